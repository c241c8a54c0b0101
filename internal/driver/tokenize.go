package driver

import (
	"lunar/internal/diag"
	"lunar/internal/dialect"
	"lunar/internal/lexer"
	"lunar/internal/source"
	"lunar/internal/token"
)

type TokenizeResult struct {
	File   *source.File
	Tokens []token.Token
	Bag    *diag.Bag
}

// Tokenize lexes one file up to EOF or the first lexical error.
func Tokenize(path string, version dialect.Version, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	lx := lexer.New(file, lexer.Options{
		Version:  version,
		Reporter: diag.BagReporter{Bag: bag},
	})

	// лексер останавливается на первой ошибке, Invalid - последний токен
	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF || tok.Kind == token.Invalid {
			break
		}
	}

	return &TokenizeResult{
		File:   file,
		Tokens: tokens,
		Bag:    bag,
	}, nil
}
