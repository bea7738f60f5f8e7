package parser

import (
	"github.com/corvid-lang/corvid/internal/lexer"
)

type delimitedConfig struct {
	Closing   lexer.TokenType
	Separator lexer.TokenType

	MissingElementMsg   string
	MissingSeparatorMsg string
}

type delimitedResult[T any] struct {
	Items []T
}

// parseDelimited parses a non-empty separator-delimited list terminated by a
// closing token. The caller positions curTok on the first element; on success
// curTok sits on the closing token. parseItem must leave curTok on the final
// token of the element it produced.
func parseDelimited[T any](p *Parser, cfg delimitedConfig, parseItem func(idx int) (T, bool)) (delimitedResult[T], bool) {
	var result delimitedResult[T]

	if cfg.Separator == "" {
		cfg.Separator = lexer.COMMA
	}

	if cfg.Closing == "" {
		panic("parseDelimited requires a closing token")
	}

	if p.curTok.Type == cfg.Closing {
		msg := cfg.MissingElementMsg
		if msg == "" {
			msg = "expected element"
		}
		p.reportError(msg, p.curTok.Span)
		return result, false
	}

	for {
		item, ok := parseItem(len(result.Items))
		if !ok {
			return result, false
		}
		result.Items = append(result.Items, item)

		switch p.peekTok.Type {
		case cfg.Separator:
			p.nextToken() // move to separator
			p.nextToken() // move to next potential element

			if p.curTok.Type == cfg.Closing {
				msg := cfg.MissingElementMsg
				if msg == "" {
					msg = "expected element"
				}
				p.reportError(msg, p.curTok.Span)
				return result, false
			}
			continue
		case cfg.Closing:
			p.nextToken()
			return result, true
		default:
			msg := cfg.MissingSeparatorMsg
			if msg == "" {
				msg = "expected '" + string(cfg.Separator) + "' or '" + string(cfg.Closing) + "'"
			}
			p.reportError(msg, p.peekTok.Span)
			return result, false
		}
	}
}
