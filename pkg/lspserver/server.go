package lspserver

import (
	"context"
	"log/slog"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/majeekg/view/pkg/changelog"
	"github.com/majeekg/view/pkg/decoration"
	"github.com/majeekg/view/pkg/decorset"
	"github.com/majeekg/view/pkg/observability"
)

const serverName = "view decoration demo"

// Server implements a minimal LSP server whose diagnostics are backed by a
// DecorationSet per document: one handler struct wrapping one document
// store.
type Server struct {
	store   *documentStore
	logger  *slog.Logger
	metrics *observability.TreeMetrics
	handler protocol.Handler
}

// NewServer creates a view LSP server. logger may be nil, in which case a
// discarding logger is used (tests don't need log output). metrics may be
// nil, in which case no tree-shape gauges are recorded.
func NewServer(logger *slog.Logger, metrics *observability.TreeMetrics) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	srv := &Server{store: newDocumentStore(), logger: logger, metrics: metrics}

	srv.handler = protocol.Handler{
		Initialize:            srv.initialize,
		Initialized:           srv.initialized,
		Shutdown:              srv.shutdown,
		SetTrace:              srv.setTrace,
		TextDocumentDidOpen:   srv.didOpen,
		TextDocumentDidChange: srv.didChange,
		TextDocumentDidClose:  srv.didClose,
	}

	return srv
}

// Run starts the LSP server on stdio, blocking until the client disconnects.
func (srv *Server) Run() error {
	lspServer := server.NewServer(&srv.handler, serverName, false)

	return lspServer.RunStdio() //nolint:wrapcheck // glsp's own error, nothing to add.
}

func (srv *Server) initialize(_ *glsp.Context, _ *protocol.InitializeParams) (any, error) {
	capabilities := srv.handler.CreateServerCapabilities()
	version := "0.1.0"

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo:   &protocol.InitializeResultServerInfo{Name: serverName, Version: &version},
	}, nil
}

func (srv *Server) initialized(_ *glsp.Context, _ *protocol.InitializedParams) error {
	return nil
}

func (srv *Server) shutdown(_ *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)

	return nil
}

func (srv *Server) setTrace(_ *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)

	return nil
}

func (srv *Server) didOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := params.TextDocument.URI
	doc := srv.store.open(uri, params.TextDocument.Text)

	srv.logger.Info("document opened", "uri", uri, "diagnostics", doc.diagnostics.Size())
	srv.publishDiagnostics(ctx, uri, doc)

	return nil
}

func (srv *Server) didChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI

	doc, ok := srv.store.get(uri)
	if !ok || len(params.ContentChanges) == 0 {
		return nil
	}

	// The client (in full-sync mode, the only mode this demo negotiates via
	// CreateServerCapabilities' default TextDocumentSyncKindFull) always
	// sends the whole new text as a single change event with no incremental
	// range; Change.From/To describe the whole prior document being
	// replaced by the whole new one.
	newText, ok := fullText(params.ContentChanges[0])
	if !ok {
		return nil
	}

	change := changelog.Change{From: 0, To: len(doc.text), InsertedLength: len(newText)}

	updated, ok := srv.store.applyChange(uri, change, newText)
	if !ok {
		return nil
	}

	srv.publishDiagnostics(ctx, uri, updated)

	return nil
}

func (srv *Server) didClose(_ *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	srv.store.close(params.TextDocument.URI)

	return nil
}

func fullText(change any) (string, bool) {
	m, ok := change.(map[string]any)
	if !ok {
		return "", false
	}

	text, ok := m["text"].(string)

	return text, ok
}

// publishDiagnostics translates the document's DecorationSet into LSP
// diagnostics and notifies the client.
func (srv *Server) publishDiagnostics(ctx *glsp.Context, uri string, doc *document) {
	decos := decorset.Collect(doc.diagnostics)
	diags := make([]protocol.Diagnostic, 0, len(decos))

	for _, d := range decos {
		diag, ok := toDiagnostic(doc.text, d)
		if ok {
			diags = append(diags, diag)
		}
	}

	ctx.Notify("textDocument/publishDiagnostics", &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diags,
	})

	if srv.metrics != nil {
		srv.metrics.RecordShape(
			context.Background(),
			doc.diagnostics.Depth(), doc.diagnostics.Size(), decorset.AvgLeafFill(doc.diagnostics),
		)
	}
}

func toDiagnostic(text string, d decoration.Decoration) (protocol.Diagnostic, bool) {
	switch desc := d.Desc.(type) {
	case *decoration.RangeDescriptor:
		severity := protocol.DiagnosticSeverityWarning

		return protocol.Diagnostic{
			Range:    protocol.Range{Start: offsetToPosition(text, d.From), End: offsetToPosition(text, d.To)},
			Severity: &severity,
			Source:   strPtr(serverName),
			Message:  desc.Attributes["message"],
		}, desc.Class != ""
	case *decoration.PointDescriptor:
		kind, ok := desc.LineAttributes["diagnostic"]
		if !ok {
			return protocol.Diagnostic{}, false
		}

		severity := protocol.DiagnosticSeverityInformation
		pos := offsetToPosition(text, d.From)

		return protocol.Diagnostic{
			Range:    protocol.Range{Start: pos, End: pos},
			Severity: &severity,
			Source:   strPtr(serverName),
			Message:  kind,
		}, true
	default:
		return protocol.Diagnostic{}, false
	}
}

func offsetToPosition(text string, offset int) protocol.Position {
	if offset > len(text) {
		offset = len(text)
	}

	line, col := uint32(0), uint32(0)

	for _, r := range text[:offset] {
		if r == '\n' {
			line++
			col = 0

			continue
		}

		col++
	}

	return protocol.Position{Line: line, Character: col}
}

func strPtr(s string) *string { return &s }
