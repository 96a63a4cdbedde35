package pascalblueprint

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/codegraphhq/codegraph/internal/types"
)

// uAuthPas is spec.md §8 scenario S1's fixture: a unit defining an
// interface and a class that extends TInterfacedObject and implements
// ITokenValidator, with one method calling another.
const uAuthPas = `unit UAuth;

interface

type
  ITokenValidator = interface
    procedure Validate;
  end;

  TAuthService = class(TInterfacedObject, ITokenValidator)
    procedure Validate;
    procedure Login;
  end;

implementation

procedure TAuthService.Validate;
begin
  WriteLn('validating');
end;

procedure TAuthService.Login;
begin
  Validate();
end;

end.
`

func TestExtractUAuthFixtureNodes(t *testing.T) {
	res := Extract("UAuth.pas", []byte(uAuthPas))

	names := map[string]types.Kind{}
	for _, n := range res.Nodes {
		names[n.QualifiedName] = n.Kind
	}

	require.Equal(t, types.KindModule, names["UAuth"])
	require.Equal(t, types.KindInterface, names["UAuth.ITokenValidator"])
	require.Equal(t, types.KindMethod, names["UAuth.ITokenValidator.Validate"])
	require.Equal(t, types.KindClass, names["UAuth.TAuthService"])
	require.Equal(t, types.KindMethod, names["UAuth.TAuthService.Validate"])
	require.Equal(t, types.KindMethod, names["UAuth.TAuthService.Login"])
}

func TestExtractUAuthFixtureEdges(t *testing.T) {
	res := Extract("UAuth.pas", []byte(uAuthPas))

	var extends, implements, calls *types.Edge
	for i := range res.Edges {
		e := &res.Edges[i]
		switch {
		case e.Kind == types.EdgeExtends:
			extends = e
		case e.Kind == types.EdgeImplements:
			implements = e
		case e.Kind == types.EdgeCalls:
			calls = e
		}
	}

	require.NotNil(t, extends)
	require.Equal(t, "TInterfacedObject", extends.TargetSymbol)
	require.False(t, extends.Resolved())

	require.NotNil(t, implements)
	require.Equal(t, "ITokenValidator", implements.TargetSymbol)
	require.True(t, implements.Resolved())
	require.Equal(t, 1.0, implements.Confidence)

	require.NotNil(t, calls)
	require.Equal(t, "Validate", calls.TargetSymbol)
	require.True(t, calls.Resolved())
	require.Equal(t, 0.95, calls.Confidence)
	require.Equal(t, types.ResolvedByClass, calls.ResolvedBy)
}
