package codebase

import (
	"context"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/hxparse/config"
	"github.com/dhamidi/hxparse/format"
	"github.com/dhamidi/hxparse/haxe/parser"
)

const lsName = "hxparse"

var lspLog = commonlog.GetLogger("hxparse.lsp")

type LSPServer struct {
	codebase *Codebase
	config   *config.Config
	handler  protocol.Handler
	server   *server.Server
	version  string
}

func NewLSPServer(version string, cfg *config.Config) *LSPServer {
	if cfg == nil {
		cfg = config.Default()
	}
	ls := &LSPServer{
		codebase: New(".", cfg.Extensions),
		config:   cfg,
		version:  version,
	}

	ls.handler = protocol.Handler{
		Initialize:            ls.initialize,
		Initialized:           ls.initialized,
		Shutdown:              ls.shutdown,
		SetTrace:              ls.setTrace,
		TextDocumentDidOpen:   ls.textDocumentDidOpen,
		TextDocumentDidChange: ls.textDocumentDidChange,
		TextDocumentDidClose:  ls.textDocumentDidClose,
		TextDocumentDidSave:   ls.textDocumentDidSave,
	}
	if cfg.LSP.Hover {
		ls.handler.TextDocumentHover = ls.textDocumentHover
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}

	ls.codebase = New(rootDir, ls.config.Extensions)
	lspLog.Infof("initialize: root %s", rootDir)

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	if err := ls.codebase.ScanAll(context.Background()); err != nil {
		lspLog.Warningf("scan %s: %s", ls.codebase.RootDir(), err)
	}
	for _, f := range ls.codebase.Files() {
		ls.publish(ctx, pathToURI(f.Path), f)
	}
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	lspLog.Info("shutdown")
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	return ls.update(ctx, params.TextDocument.URI, []byte(params.TextDocument.Text))
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		return ls.update(ctx, params.TextDocument.URI, []byte(textChange.Text))
	}
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text == nil {
		return nil
	}
	return ls.update(ctx, params.TextDocument.URI, []byte(*params.Text))
}

func (ls *LSPServer) update(ctx *glsp.Context, uri protocol.DocumentUri, content []byte) error {
	path, err := uriToPath(uri)
	if err != nil {
		lspLog.Warningf("bad document uri %q: %s", uri, err)
		return nil
	}
	info, err := ls.codebase.UpdateFile(context.Background(), path, content)
	if err != nil {
		return err
	}
	ls.publish(ctx, uri, info)
	return nil
}

func (ls *LSPServer) publish(ctx *glsp.Context, uri protocol.DocumentUri, info *FileInfo) {
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: toProtocolDiagnostics(info.Diagnostics()),
	})
}

func (ls *LSPServer) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	return ls.hover(path, int(params.Position.Line), int(params.Position.Character)), nil
}

func (ls *LSPServer) hover(path string, line, character int) *protocol.Hover {
	node := ls.codebase.NodeAt(path, line, character)
	if node == nil {
		return nil
	}
	r := toRange(node.Span)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: describe(node),
		},
		Range: &r,
	}
}

func describe(node *parser.Node) string {
	var b strings.Builder
	b.WriteString("**" + node.Kind.String() + "**")
	switch {
	case node.Name != "":
		b.WriteString(" `" + node.Name + "`")
	case node.Operator() != "":
		b.WriteString(" `" + node.Operator() + "`")
	case node.Kind == parser.KindLiteral:
		b.WriteString(" " + node.LiteralKind().String())
	}
	b.WriteString("\n\n```\n" + format.Sexpr(node) + "\n```")
	if node.Error != nil {
		b.WriteString("\n\n" + node.Error.Message)
	}
	return b.String()
}

// toProtocolDiagnostics never returns nil, so publishing an empty result
// clears the client's diagnostics.
func toProtocolDiagnostics(diags []parser.Diagnostic) []protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	source := lsName
	out := make([]protocol.Diagnostic, 0, len(diags))
	for _, d := range diags {
		out = append(out, protocol.Diagnostic{
			Range:    toRange(d.Span),
			Severity: &severity,
			Source:   &source,
			Message:  d.Message,
		})
	}
	return out
}

func toRange(span parser.Span) protocol.Range {
	return protocol.Range{
		Start: toPosition(span.Start),
		End:   toPosition(span.End),
	}
}

func toPosition(pos parser.Position) protocol.Position {
	return protocol.Position{
		Line:      protocol.UInteger(max(pos.Line-1, 0)),
		Character: protocol.UInteger(max(pos.Column-1, 0)),
	}
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func pathToURI(path string) protocol.DocumentUri {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(kind protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &kind
}
