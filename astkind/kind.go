// Package astkind implements the query engine's AST-aware helpers: kind
// shorthand expansion, decision-point depth, structural containment, and
// the symbol<->AST defining-node join. None of it depends on a storage
// backend; callers supply nodes through the Node/Lookup abstraction so the
// same logic serves both the relational and native backends.
package astkind

// Node is the minimal AST node shape these helpers need: an id, an
// optional parent, a kind string, and a half-open byte span.
type Node struct {
	ID        int64
	ParentID  *int64
	Kind      string
	ByteStart int
	ByteEnd   int
}

// Lookup resolves a node by id, the only access pattern these helpers
// need against a parent-id relation.
type Lookup interface {
	NodeByID(id int64) (Node, bool)
}

// Shorthand is a caller-facing token that expands to a language-specific
// set of concrete grammar node kinds.
type Shorthand string

const (
	ShorthandLoops        Shorthand = "loops"
	ShorthandConditionals Shorthand = "conditionals"
	ShorthandFunctions    Shorthand = "functions"
	ShorthandDeclarations Shorthand = "declarations"
	ShorthandUnsafe       Shorthand = "unsafe"
	ShorthandTypes        Shorthand = "types"
	ShorthandMacros       Shorthand = "macros"
	ShorthandMods         Shorthand = "mods"
	ShorthandTraits       Shorthand = "traits"
	ShorthandImpls        Shorthand = "impls"
)

// kindTables maps language -> shorthand -> concrete tree-sitter node kinds,
// one table per language supported by the indexer's grammar set (see
// internal/runtime/languages.go in the indexer for the matching language
// list: go, typescript, javascript, python, rust, c, cpp, java, php, ruby).
var kindTables = map[string]map[Shorthand][]string{
	"go": {
		ShorthandLoops:        {"for_statement"},
		ShorthandConditionals: {"if_statement", "expression_switch_statement", "type_switch_statement", "select_statement"},
		ShorthandFunctions:    {"function_declaration", "method_declaration", "func_literal"},
		ShorthandDeclarations: {"function_declaration", "method_declaration", "type_declaration", "var_declaration", "const_declaration"},
		ShorthandUnsafe:       {"unsafe"},
		ShorthandTypes:        {"type_declaration", "type_spec", "struct_type", "interface_type"},
		ShorthandMacros:       {},
		ShorthandMods:         {"package_clause"},
		ShorthandTraits:       {"interface_type"},
		ShorthandImpls:        {"method_declaration"},
	},
	"rust": {
		ShorthandLoops:        {"for_expression", "while_expression", "loop_expression"},
		ShorthandConditionals: {"if_expression", "if_let_expression", "match_expression", "match_arm"},
		ShorthandFunctions:    {"function_item", "closure_expression"},
		ShorthandDeclarations: {"function_item", "struct_item", "enum_item", "const_item", "static_item", "let_declaration"},
		ShorthandUnsafe:       {"unsafe_block"},
		ShorthandTypes:        {"struct_item", "enum_item", "type_item", "union_item"},
		ShorthandMacros:       {"macro_definition", "macro_invocation"},
		ShorthandMods:         {"mod_item"},
		ShorthandTraits:       {"trait_item"},
		ShorthandImpls:        {"impl_item"},
	},
	"python": {
		ShorthandLoops:        {"for_statement", "while_statement"},
		ShorthandConditionals: {"if_statement", "match_statement"},
		ShorthandFunctions:    {"function_definition", "lambda"},
		ShorthandDeclarations: {"function_definition", "class_definition", "assignment"},
		ShorthandUnsafe:       {},
		ShorthandTypes:        {"class_definition"},
		ShorthandMacros:       {"decorator"},
		ShorthandMods:         {"module"},
		ShorthandTraits:       {},
		ShorthandImpls:        {"class_definition"},
	},
	"typescript": {
		ShorthandLoops:        {"for_statement", "for_in_statement", "while_statement", "do_statement"},
		ShorthandConditionals: {"if_statement", "switch_statement"},
		ShorthandFunctions:    {"function_declaration", "arrow_function", "method_definition", "function_expression"},
		ShorthandDeclarations: {"function_declaration", "class_declaration", "interface_declaration", "type_alias_declaration", "variable_declaration"},
		ShorthandUnsafe:       {},
		ShorthandTypes:        {"interface_declaration", "type_alias_declaration", "class_declaration"},
		ShorthandMacros:       {},
		ShorthandMods:         {"module", "namespace_declaration"},
		ShorthandTraits:       {"interface_declaration"},
		ShorthandImpls:        {"class_declaration"},
	},
	"javascript": {
		ShorthandLoops:        {"for_statement", "for_in_statement", "while_statement", "do_statement"},
		ShorthandConditionals: {"if_statement", "switch_statement"},
		ShorthandFunctions:    {"function_declaration", "arrow_function", "method_definition", "function_expression"},
		ShorthandDeclarations: {"function_declaration", "class_declaration", "variable_declaration"},
		ShorthandUnsafe:       {},
		ShorthandTypes:        {"class_declaration"},
		ShorthandMacros:       {},
		ShorthandMods:         {"program"},
		ShorthandTraits:       {},
		ShorthandImpls:        {"class_declaration"},
	},
	"java": {
		ShorthandLoops:        {"for_statement", "enhanced_for_statement", "while_statement", "do_statement"},
		ShorthandConditionals: {"if_statement", "switch_expression"},
		ShorthandFunctions:    {"method_declaration", "lambda_expression", "constructor_declaration"},
		ShorthandDeclarations: {"method_declaration", "class_declaration", "interface_declaration", "field_declaration"},
		ShorthandUnsafe:       {},
		ShorthandTypes:        {"class_declaration", "interface_declaration", "enum_declaration"},
		ShorthandMacros:       {},
		ShorthandMods:         {"package_declaration"},
		ShorthandTraits:       {"interface_declaration"},
		ShorthandImpls:        {"class_declaration"},
	},
	"c": {
		ShorthandLoops:        {"for_statement", "while_statement", "do_statement"},
		ShorthandConditionals: {"if_statement", "switch_statement"},
		ShorthandFunctions:    {"function_definition"},
		ShorthandDeclarations: {"function_definition", "declaration", "struct_specifier"},
		ShorthandUnsafe:       {},
		ShorthandTypes:        {"struct_specifier", "union_specifier", "enum_specifier", "type_definition"},
		ShorthandMacros:       {"preproc_def", "preproc_function_def"},
		ShorthandMods:         {},
		ShorthandTraits:       {},
		ShorthandImpls:        {},
	},
	"cpp": {
		ShorthandLoops:        {"for_statement", "while_statement", "do_statement", "for_range_loop"},
		ShorthandConditionals: {"if_statement", "switch_statement"},
		ShorthandFunctions:    {"function_definition", "lambda_expression"},
		ShorthandDeclarations: {"function_definition", "declaration", "class_specifier", "struct_specifier"},
		ShorthandUnsafe:       {},
		ShorthandTypes:        {"class_specifier", "struct_specifier", "union_specifier", "enum_specifier", "type_definition"},
		ShorthandMacros:       {"preproc_def", "preproc_function_def"},
		ShorthandMods:         {"namespace_definition"},
		ShorthandTraits:       {},
		ShorthandImpls:        {"class_specifier"},
	},
	"php": {
		ShorthandLoops:        {"for_statement", "foreach_statement", "while_statement", "do_statement"},
		ShorthandConditionals: {"if_statement", "switch_statement", "match_expression"},
		ShorthandFunctions:    {"function_definition", "method_declaration", "anonymous_function_creation_expression"},
		ShorthandDeclarations: {"function_definition", "class_declaration", "interface_declaration", "property_declaration"},
		ShorthandUnsafe:       {},
		ShorthandTypes:        {"class_declaration", "interface_declaration", "trait_declaration"},
		ShorthandMacros:       {},
		ShorthandMods:         {"namespace_definition"},
		ShorthandTraits:       {"trait_declaration"},
		ShorthandImpls:        {"class_declaration"},
	},
	"ruby": {
		ShorthandLoops:        {"for", "while", "until"},
		ShorthandConditionals: {"if", "unless", "case"},
		ShorthandFunctions:    {"method", "singleton_method", "lambda", "block"},
		ShorthandDeclarations: {"method", "class", "module", "assignment"},
		ShorthandUnsafe:       {},
		ShorthandTypes:        {"class"},
		ShorthandMacros:       {},
		ShorthandMods:         {"module"},
		ShorthandTraits:       {"module"},
		ShorthandImpls:        {"class"},
	},
}

// ExpandKind expands a caller-supplied token into the concrete grammar node
// kinds it denotes for lang. An unknown shorthand (including an unknown
// language) is treated as a literal kind string and returned unchanged,
// per the spec's "unknown shorthands are literal kinds" rule.
func ExpandKind(lang, token string) []string {
	table, ok := kindTables[lang]
	if !ok {
		return []string{token}
	}
	kinds, ok := table[Shorthand(token)]
	if !ok {
		return []string{token}
	}
	return kinds
}

// ExpandKinds expands every token in tokens, deduplicating the result
// while preserving first-seen order.
func ExpandKinds(lang string, tokens []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, tok := range tokens {
		for _, k := range ExpandKind(lang, tok) {
			if !seen[k] {
				seen[k] = true
				out = append(out, k)
			}
		}
	}
	return out
}
