package lsp

import (
	"unicode/utf16"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// LSP columns count UTF-16 code units; usage ranges count bytes.

func toProtocolPosition(content string, offset int) protocol.Position {
	if offset > len(content) {
		offset = len(content)
	}
	line, lineStart := 0, 0
	for i := 0; i < offset; i++ {
		if content[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	col := 0
	for _, r := range content[lineStart:offset] {
		col += utf16.RuneLen(r)
	}
	return protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(col)}
}

func toOffset(content string, pos protocol.Position) int {
	offset := 0
	for line := protocol.UInteger(0); line < pos.Line; line++ {
		next := -1
		for i := offset; i < len(content); i++ {
			if content[i] == '\n' {
				next = i + 1
				break
			}
		}
		if next < 0 {
			return len(content)
		}
		offset = next
	}
	col := protocol.UInteger(0)
	for offset < len(content) && col < pos.Character {
		r, size := utf8.DecodeRuneInString(content[offset:])
		if r == '\n' {
			break
		}
		col += protocol.UInteger(utf16.RuneLen(r))
		offset += size
	}
	return offset
}
