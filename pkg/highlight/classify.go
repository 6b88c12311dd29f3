package highlight

import (
	"github.com/alecthomas/chroma/v2"

	"github.com/matzehuels/codeshot/pkg/theme"
)

// classes maps chroma token types to syntax classes. Types not listed
// inherit from their sub-category, then their category.
var classes = map[chroma.TokenType]theme.Class{
	chroma.Comment:        theme.ClassComment,
	chroma.CommentPreproc: theme.ClassAttribute,

	chroma.Keyword:         theme.ClassKeyword,
	chroma.KeywordType:     theme.ClassType,
	chroma.KeywordConstant: theme.ClassConstant,

	chroma.Name:              theme.ClassText,
	chroma.NameFunction:      theme.ClassFunction,
	chroma.NameFunctionMagic: theme.ClassFunction,
	chroma.NameBuiltin:       theme.ClassFunction,
	chroma.NameBuiltinPseudo: theme.ClassKeyword,
	chroma.NameClass:         theme.ClassClass,
	chroma.NameException:     theme.ClassClass,
	chroma.NameNamespace:     theme.ClassType,
	chroma.NameConstant:      theme.ClassConstant,
	chroma.NameEntity:        theme.ClassConstant,
	chroma.NameLabel:         theme.ClassConstant,
	chroma.NameAttribute:     theme.ClassAttribute,
	chroma.NameDecorator:     theme.ClassAttribute,
	chroma.NameTag:           theme.ClassTag,
	chroma.NameProperty:      theme.ClassProperty,
	chroma.NameKeyword:       theme.ClassKeyword,
	chroma.NameOperator:      theme.ClassOperator,
	chroma.NameOther:         theme.ClassVariable,

	// Name types share one sub-category, so variables are listed individually.
	chroma.NameVariable:          theme.ClassVariable,
	chroma.NameVariableAnonymous: theme.ClassVariable,
	chroma.NameVariableClass:     theme.ClassVariable,
	chroma.NameVariableGlobal:    theme.ClassVariable,
	chroma.NameVariableInstance:  theme.ClassVariable,
	chroma.NameVariableMagic:     theme.ClassVariable,

	chroma.Literal:            theme.ClassString,
	chroma.LiteralDate:        theme.ClassNumber,
	chroma.LiteralString:      theme.ClassString,
	chroma.LiteralStringRegex: theme.ClassRegexp,
	chroma.LiteralNumber:      theme.ClassNumber,

	chroma.Operator:     theme.ClassOperator,
	chroma.OperatorWord: theme.ClassKeyword,

	chroma.Punctuation: theme.ClassText,
	chroma.Text:        theme.ClassText,
	chroma.Generic:     theme.ClassText,
}

// Classify flattens a chroma token type to one syntax class. The most
// specific mapped type wins; unmapped types are plain text.
func Classify(t chroma.TokenType) theme.Class {
	for _, candidate := range []chroma.TokenType{t, t.SubCategory(), t.Category()} {
		if c, ok := classes[candidate]; ok {
			return c
		}
	}
	return theme.ClassText
}
