package parser

// Per-language tree-sitter query strings, adapted from the teacher's
// internal/parser/parser_language_setup.go captures. Capture names follow
// the teacher's <kind>.name / <kind> convention so internal/extractor's
// capture-to-Node mapping stays uniform across languages.

const queryGo = `
	(function_declaration name: (identifier) @function.name) @function
	(method_declaration
		receiver: (parameter_list) @method.receiver
		name: (field_identifier) @method.name) @method
	(type_declaration
		(type_spec name: (type_identifier) @type.name)) @type
	(func_literal) @function
	(import_spec path: (interpreted_string_literal) @import.path) @import
	(call_expression function: (identifier) @call.name) @call
	(call_expression function: (selector_expression field: (field_identifier) @call.name)) @call
`

const queryJavaScript = `
	(function_declaration name: (identifier) @function.name) @function
	(generator_function_declaration name: (identifier) @function.name) @function
	(variable_declarator
		name: (identifier) @function.name
		value: [(arrow_function) (function_expression) (generator_function)]) @function
	(variable_declarator
		name: (identifier) @variable.name
		value: (_) @variable.value) @variable
	(method_definition name: (property_identifier) @method.name) @method
	(class_declaration name: (identifier) @class.name) @class
	(export_statement declaration: (_) @export)
	(import_statement source: (string) @import.source) @import
	(call_expression function: (identifier) @call.name) @call
	(call_expression function: (member_expression property: (property_identifier) @call.name)) @call
	(class_heritage (extends_clause value: (identifier) @extends.name)) @extends
`

const queryTypeScript = `
	(function_declaration name: (identifier) @function.name) @function
	(generator_function_declaration name: (identifier) @function.name) @function
	(method_definition name: (property_identifier) @method.name) @method
	(arrow_function) @function
	(function_expression name: (identifier) @function.name) @function
	(class_declaration name: (type_identifier) @class.name) @class
	(interface_declaration name: (type_identifier) @interface.name) @interface
	(type_alias_declaration name: (type_identifier) @type.name) @type
	(enum_declaration name: (identifier) @enum.name) @enum
	(export_statement declaration: (_) @export)
	(import_statement source: (string) @import.source) @import
	(call_expression function: (identifier) @call.name) @call
	(call_expression function: (member_expression property: (property_identifier) @call.name)) @call
	(class_heritage (extends_clause value: (identifier) @extends.name)) @extends
`

const queryPython = `
	(class_definition
		body: (block
			(function_definition name: (identifier) @method.name))) @method
	(function_definition name: (identifier) @function.name) @function
	(class_definition name: (identifier) @class.name) @class
	(import_statement) @import
	(import_from_statement) @import
	(call function: (identifier) @call.name) @call
	(call function: (attribute attribute: (identifier) @call.name)) @call
	(class_definition superclasses: (argument_list (identifier) @extends.name)) @extends
`

const queryRust = `
	(impl_item
		body: (declaration_list
			(function_item name: (identifier) @method.name))) @method
	(trait_item
		body: (declaration_list
			(function_item name: (identifier) @method.name))) @method
	(function_item name: (identifier) @function.name) @function
	(struct_item name: (type_identifier) @struct.name) @struct
	(enum_item name: (type_identifier) @enum.name) @enum
	(trait_item name: (type_identifier) @interface.name) @interface
	(type_item name: (type_identifier) @type.name) @type
	(use_declaration) @import
	(mod_item name: (identifier) @module.name) @module
`

const queryJava = `
	(method_declaration name: (identifier) @method.name) @method
	(constructor_declaration name: (identifier) @constructor.name) @constructor
	(class_declaration name: (identifier) @class.name) @class
	(record_declaration name: (identifier) @class.name) @class
	(interface_declaration name: (identifier) @interface.name) @interface
	(enum_declaration name: (identifier) @enum.name) @enum
	(field_declaration declarator: (variable_declarator name: (identifier) @field.name)) @field
	(import_declaration) @import
	(package_declaration) @package
	(method_invocation name: (identifier) @call.name) @call
	(object_creation_expression type: (type_identifier) @call.name) @call
	(class_declaration superclass: (superclass (type_identifier) @extends.name)) @extends
	(class_declaration interfaces: (super_interfaces (type_list (type_identifier) @implements.name))) @implements
`

const queryCpp = `
	(function_definition declarator: (function_declarator declarator: (identifier) @function.name)) @function
	(class_specifier name: (type_identifier) @class.name) @class
	(struct_specifier name: (type_identifier) @struct.name) @struct
	(enum_specifier name: (type_identifier) @enum.name) @enum
	(namespace_definition) @namespace
	(preproc_include) @import
	(using_declaration) @import
`

const queryC = `
	(function_definition declarator: (function_declarator declarator: (identifier) @function.name)) @function
	(struct_specifier name: (type_identifier) @struct.name) @struct
	(enum_specifier name: (type_identifier) @enum.name) @enum
	(preproc_include) @import
`

const queryCSharp = `
	(method_declaration name: (identifier) @method.name) @method
	(constructor_declaration name: (identifier) @constructor.name) @constructor
	(class_declaration name: (identifier) @class.name) @class
	(interface_declaration name: (identifier) @interface.name) @interface
	(struct_declaration name: (identifier) @struct.name) @struct
	(record_declaration name: (identifier) @record.name) @record
	(enum_declaration name: (identifier) @enum.name) @enum
	(property_declaration name: (identifier) @property.name) @property
	(field_declaration
		(variable_declaration
			(variable_declarator (identifier) @field.name))) @field
	(using_directive (qualified_name) @using.name) @using
	(using_directive (identifier) @using.name) @using
	(namespace_declaration name: (qualified_name) @namespace.name) @namespace
	(namespace_declaration name: (identifier) @namespace.name) @namespace
	(invocation_expression function: (identifier) @call.name) @call
	(invocation_expression function: (member_access_expression name: (identifier) @call.name)) @call
	(class_declaration (base_list (identifier) @extends.name)) @extends
`

const queryPHP = `
	(class_declaration name: (name) @class.name) @class
	(interface_declaration name: (name) @interface.name) @interface
	(trait_declaration name: (name) @trait.name) @trait
	(enum_declaration name: (name) @enum.name) @enum
	(function_definition name: (name) @function.name) @function
	(method_declaration name: (name) @method.name) @method
	(namespace_definition name: (namespace_name) @namespace.name) @namespace
	(namespace_use_declaration) @import
	(property_declaration) @property
	(const_declaration) @constant
`

const queryRuby = `
	(method name: (identifier) @method.name) @method
	(singleton_method name: (identifier) @method.name) @method
	(class name: (constant) @class.name) @class
	(module name: (constant) @module.name) @module
	(call method: (identifier) @import.name (#eq? @import.name "require")) @import
`

const querySwift = `
	(function_declaration name: (simple_identifier) @function.name) @function
	(class_declaration name: (type_identifier) @class.name) @class
	(protocol_declaration name: (type_identifier) @interface.name) @interface
	(import_declaration) @import
`

const queryKotlin = `
	(function_declaration (simple_identifier) @function.name) @function
	(class_declaration (type_identifier) @class.name) @class
	(object_declaration (type_identifier) @class.name) @class
	(import_header) @import
`
