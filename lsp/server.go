// Package lsp serves usage documents over the Language Server Protocol:
// build errors as diagnostics, option details on hover, and option aliases
// as completions.
package lsp

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/dhamidi/docopt/usage"
)

const lsName = "docopt"

var log = commonlog.GetLogger("docopt.lsp")

type LSPServer struct {
	workspace *Workspace
	handler   protocol.Handler
	server    *server.Server
	version   string
}

func NewLSPServer(version string) *LSPServer {
	ls := &LSPServer{
		workspace: NewWorkspace(),
		version:   version,
	}

	ls.handler = protocol.Handler{
		Initialize:             ls.initialize,
		Initialized:            ls.initialized,
		Shutdown:               ls.shutdown,
		SetTrace:               ls.setTrace,
		TextDocumentDidOpen:    ls.textDocumentDidOpen,
		TextDocumentDidChange:  ls.textDocumentDidChange,
		TextDocumentDidClose:   ls.textDocumentDidClose,
		TextDocumentDidSave:    ls.textDocumentDidSave,
		TextDocumentCompletion: ls.textDocumentCompletion,
		TextDocumentHover:      ls.textDocumentHover,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) Workspace() *Workspace {
	return ls.workspace
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}
	capabilities.CompletionProvider = &protocol.CompletionOptions{
		TriggerCharacters: []string{"-"},
	}
	capabilities.HoverProvider = true

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Infof("initialized %s %s", lsName, ls.version)
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	doc := ls.workspace.Update(params.TextDocument.URI, params.TextDocument.Text)
	ls.publish(ctx, doc)
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		doc := ls.workspace.Update(params.TextDocument.URI, textChange.Text)
		ls.publish(ctx, doc)
	}
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	ls.workspace.Close(params.TextDocument.URI)
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text == nil {
		return nil
	}
	doc := ls.workspace.Update(params.TextDocument.URI, *params.Text)
	ls.publish(ctx, doc)
	return nil
}

func (ls *LSPServer) publish(ctx *glsp.Context, doc *Document) {
	log.Debugf("%s: %d diagnostics", doc.URI, len(doc.Errors))
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         doc.URI,
		Diagnostics: Diagnostics(doc),
	})
}

// Diagnostics converts a document's build errors to LSP diagnostics.
func Diagnostics(doc *Document) []protocol.Diagnostic {
	out := []protocol.Diagnostic{}
	severity := protocol.DiagnosticSeverityError
	source := lsName
	for _, e := range doc.Errors {
		end, err := e.Range.End()
		if err != nil {
			end = e.Range.Start
		}
		out = append(out, protocol.Diagnostic{
			Range: protocol.Range{
				Start: toProtocolPosition(doc.Content, e.Range.Start),
				End:   toProtocolPosition(doc.Content, end),
			},
			Severity: &severity,
			Source:   &source,
			Message:  e.Text,
		})
	}
	return out
}

func (ls *LSPServer) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc := ls.workspace.Get(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	spec := doc.OptionAt(toOffset(doc.Content, params.Position))
	if spec == nil {
		return nil, nil
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: describeOption(spec),
		},
	}, nil
}

func describeOption(spec *usage.OptionSpec) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "`%s`", strings.Join(spec.Aliases(), "`, `"))
	if spec.Arity == usage.TakesValue {
		sb.WriteString(" takes a value")
	} else {
		sb.WriteString(" is a flag")
	}
	if spec.HasDefault {
		fmt.Fprintf(&sb, " (default `%s`)", spec.Default)
	}
	if spec.Description != "" {
		sb.WriteString("\n\n")
		sb.WriteString(spec.Description)
	}
	return sb.String()
}

func (ls *LSPServer) textDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	doc := ls.workspace.Get(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	word, _ := doc.WordAt(toOffset(doc.Content, params.Position))
	items := Completions(doc, word)
	if len(items) == 0 {
		return nil, nil
	}
	return items, nil
}

// Completions returns the declared option aliases that extend prefix.
func Completions(doc *Document, prefix string) []protocol.CompletionItem {
	if !strings.HasPrefix(prefix, "-") {
		return nil
	}
	var items []protocol.CompletionItem
	for _, alias := range doc.Grammar.Options().Aliases() {
		if !strings.HasPrefix(alias, prefix) {
			continue
		}
		spec, _ := doc.Grammar.Options().Lookup(alias)
		kind := protocol.CompletionItemKindProperty
		detail := spec.Description
		items = append(items, protocol.CompletionItem{
			Label:  alias,
			Kind:   &kind,
			Detail: &detail,
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Label < items[j].Label
	})
	return items
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
