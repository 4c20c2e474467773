package format

import (
	"bytes"
	"strings"
	"testing"
)

func TestEBNFEncoderVerifies(t *testing.T) {
	docs := map[string]string{
		"naval fate": navalFate,
		"shortcut":   "Usage: prog [options] <file>...\n\nOptions:\n  -q --quiet  Quiet.\n  -n NUM      Count.\n",
		"repeated":   "Usage: prog (<src> <dst>)... [-v]",
		"literals":   "Usage: my-prog run-it -- <x-y>",
	}

	for name, doc := range docs {
		t.Run(name, func(t *testing.T) {
			g := build(t, doc)
			text, err := NewEBNFEncoder(&bytes.Buffer{}).MarshalText(g)
			if err != nil {
				t.Fatalf("MarshalText: %v", err)
			}
			if err := VerifyEBNF(name+".ebnf", string(text)); err != nil {
				t.Errorf("VerifyEBNF: %v\n%s", err, text)
			}
		})
	}
}

func TestEBNFEncoderProductions(t *testing.T) {
	g := build(t, navalFate)
	var buf bytes.Buffer
	if err := NewEBNFEncoder(&buf).Encode(g); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Usage = Pattern1 | Pattern2 | Pattern3 | Pattern4 | Pattern5 | Pattern6 .\n",
		`Pattern1 = "ship" "new" Name { Name } .` + "\n",
		`Opt_help = ( "-h" | "--help" ) .` + "\n",
		`Opt_speed = "--speed" value .` + "\n",
		"Name = value .\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
}

func TestEBNFIdent(t *testing.T) {
	tests := map[string]string{
		"<ship-name>": "Ship_name",
		"FILE":        "FILE",
		"<2nd>":       "Arg_2nd",
		"<x>":         "X",
	}
	for in, want := range tests {
		if got := ident("Arg_", in); got != want {
			t.Errorf("ident(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestVerifyEBNFRejectsBrokenGrammar(t *testing.T) {
	if err := VerifyEBNF("broken.ebnf", "Usage = Missing .\n"); err == nil {
		t.Error("VerifyEBNF accepted a reference to an undefined production")
	}
}
