package treesitter

const goHighlightQuery = `
((comment) @comment)
((interpreted_string_literal) @string)
((raw_string_literal) @string)
((rune_literal) @string)
((int_literal) @number)
((float_literal) @number)
((imaginary_literal) @number)
[
  "break" "case" "continue" "default" "defer" "else" "fallthrough" "for"
  "go" "goto" "if" "range" "return" "select" "switch"
] @keyword
["const" "type" "var"] @keyword.storage
["chan" "func" "interface" "map" "struct"] @keyword.composite
["import" "package"] @constant
((nil) @constant)
((true) @constant)
((false) @constant)
((iota) @constant)
((identifier) @type (#match? @type "^(bool|byte|rune|string|int|int8|int16|int32|int64|uint|uint8|uint16|uint32|uint64|uintptr|float32|float64|complex64|complex128|error|any|comparable)$"))
((identifier) @builtin (#match? @builtin "^(append|cap|clear|close|complex|copy|delete|imag|len|make|max|min|new|panic|print|println|real|recover)$"))
((type_identifier) @type)
((function_declaration name: (identifier) @function))
((method_declaration name: (field_identifier) @function))
((field_identifier) @field)
((identifier) @variable)
[
  "+" "-" "*" "/" "%" "==" "!=" "<=" ">=" "<" ">" "=" ":=" "&&" "||"
  "!" "&" "|" "^" "<<" ">>" "&^" "+=" "-=" "*=" "/=" "%=" "<-" "++" "--"
] @operator
["." "," ";" ":" "(" ")" "[" "]" "{" "}"] @punctuation
`

const cppHighlightQuery = `
((comment) @comment)
((string_literal) @string)
((raw_string_literal) @string)
((char_literal) @string)
((number_literal) @number)
((system_lib_string) @include)
((preproc_include path: (string_literal) @include))
["#include" "#define" "#if" "#ifdef" "#ifndef" "#else" "#endif"] @macro
[
  "if" "else" "switch" "case" "default" "for" "while" "do" "break"
  "continue" "goto" "return" "try" "catch" "throw"
] @keyword
((storage_class_specifier) @keyword.storage)
((type_qualifier) @keyword.qualifier)
["struct" "union" "enum" "class"] @keyword.composite
["namespace" "using" "template" "typename" "sizeof" "new" "delete"] @constant
((primitive_type) @type)
((sized_type_specifier) @type)
((type_identifier) @type)
((true) @constant)
((false) @constant)
((null) @constant)
((function_declarator declarator: (identifier) @function))
((call_expression function: (identifier) @function))
((field_identifier) @field)
((identifier) @variable)
["(" ")" "[" "]" "{" "}" ";" "," "." "::" ":"] @punctuation
`

const javaHighlightQuery = `
((line_comment) @comment)
((block_comment) @comment)
((string_literal) @string)
((character_literal) @string)
((decimal_integer_literal) @number)
((hex_integer_literal) @number)
((decimal_floating_point_literal) @number)
[
  "if" "else" "switch" "case" "default" "for" "while" "do" "break"
  "continue" "return" "try" "catch" "finally" "throw" "throws"
] @keyword
["final" "abstract" "static" "native"] @keyword.storage
["volatile" "synchronized"] @keyword.qualifier
["class" "interface" "enum"] @keyword.composite
["import" "package" "new" "instanceof" "extends" "implements"] @constant
((integral_type) @type)
((floating_point_type) @type)
((boolean_type) @type)
((void_type) @type)
((type_identifier) @type)
((true) @constant)
((false) @constant)
((null_literal) @constant)
((method_declaration name: (identifier) @function))
((method_invocation name: (identifier) @function))
((identifier) @variable)
["(" ")" "[" "]" "{" "}" ";" "," "."] @punctuation
`

const rustHighlightQuery = `
((line_comment) @comment)
((block_comment) @comment)
((string_literal) @string)
((raw_string_literal) @string)
((char_literal) @string)
((integer_literal) @number)
((float_literal) @number)
[
  "if" "else" "match" "loop" "while" "for" "break" "continue" "return"
] @keyword
["static" "const" "let"] @keyword.storage
((mutable_specifier) @keyword.qualifier)
["ref" "unsafe"] @keyword.qualifier
["struct" "enum" "trait" "impl" "union"] @keyword.composite
["pub" "use" "mod" "async" "await" "dyn" "fn"] @constant
((self) @constant)
((primitive_type) @type)
((type_identifier) @type)
((boolean_literal) @constant)
((function_item name: (identifier) @function))
((macro_invocation macro: (identifier) @macro))
((field_identifier) @field)
((identifier) @variable)
["(" ")" "[" "]" "{" "}" ";" "," "." "::" ":"] @punctuation
`

const tomlHighlightQuery = `
((comment) @comment)
((string) @string)
((integer) @number)
((float) @number)
((boolean) @constant)
((local_date) @string)
((local_time) @string)
((local_date_time) @string)
((offset_date_time) @string)
((bare_key) @field)
((quoted_key) @field)
((table (bare_key) @type))
((table (quoted_key) @type))
((table (dotted_key) @type))
((table_array_element (bare_key) @type))
((table_array_element (quoted_key) @type))
((table_array_element (dotted_key) @type))
["=" "." "," "[" "]" "[[" "]]" "{" "}"] @punctuation
`

const bashHighlightQuery = `
((comment) @comment)
((string) @string)
((raw_string) @string)
((heredoc_body) @string)
((number) @number)
((variable_name) @variable)
((special_variable_name) @variable)
((command_name) @function)
((function_definition name: (word) @function))
[
  "if" "then" "else" "elif" "fi" "case" "esac" "for" "while" "until"
  "do" "done" "in" "select"
] @keyword
["local" "export" "readonly" "declare" "typeset" "unset"] @keyword.storage
["function"] @constant
["$" "${" "}" "(" ")" "((" "))" "[" "]" "[[" "]]" "{" ";" ";;" "&&" "||" "|" "&" "<" ">" ">>" "<<" "<<<"] @operator
`
