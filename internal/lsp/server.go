package lsp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"lunar/internal/lint"
	"lunar/internal/project"
	"lunar/internal/trace"
	"lunar/internal/workspace"
)

var (
	// ErrExit signals a graceful shutdown after receiving "exit".
	ErrExit = errors.New("lsp exit")
	// ErrExitWithoutShutdown signals an "exit" without a preceding "shutdown".
	ErrExitWithoutShutdown = errors.New("lsp exit without shutdown")
)

// ServerOptions configures LSP server behavior.
type ServerOptions struct {
	Debounce       time.Duration
	MaxDiagnostics int
	// Linter replaces the luacheck runner configured through lua.luacheckPath.
	Linter lint.Linter
	// Cache persists workspace symbols between sessions; nil disables it.
	Cache *workspace.Cache
	// Watch keeps the workspace index in sync with files changed outside
	// the editor.
	Watch bool
	// Version is reported as serverInfo.version.
	Version string
}

// Server handles stdio JSON-RPC for the Lua language server.
type Server struct {
	in        *bufio.Reader
	out       *bufio.Writer
	sendMu    sync.Mutex
	mu        sync.Mutex
	docs      map[string]*document
	published map[string]struct{}

	workspaceRoot     string
	analysisRoot      string
	analysisMode      analysisMode
	scopeResolved     bool
	shutdownRequested bool
	debounce          time.Duration
	maxDiagnostics    int
	settings          settings
	clientSettings    []luaSettings
	linter            lint.Linter
	cache             *workspace.Cache
	watch             bool
	version           string

	index       *workspace.Index
	watcher     *workspace.Watcher
	indexCancel context.CancelFunc
	bg          sync.WaitGroup

	baseCtx  context.Context
	tracer   trace.Tracer
	traceLSP bool
}

// NewServer constructs a new LSP server.
func NewServer(in io.Reader, out io.Writer, opts ServerOptions) *Server {
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = 300 * time.Millisecond
	}
	maxDiagnostics := opts.MaxDiagnostics
	if maxDiagnostics <= 0 {
		maxDiagnostics = 100
	}
	return &Server{
		in:             bufio.NewReader(in),
		out:            bufio.NewWriter(out),
		docs:           make(map[string]*document),
		published:      make(map[string]struct{}),
		debounce:       debounce,
		maxDiagnostics: maxDiagnostics,
		settings:       settingsFromConfig(project.Default()),
		linter:         opts.Linter,
		cache:          opts.Cache,
		watch:          opts.Watch,
		version:        opts.Version,
		baseCtx:        context.Background(),
		tracer:         trace.Nop,
	}
}

// Run serves LSP requests until exit or EOF.
func (s *Server) Run(ctx context.Context) error {
	s.baseCtx = ctx
	s.tracer = trace.FromContext(ctx)
	defer s.stopBackground()
	for {
		payload, err := readMessage(s.in)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		var msg rpcMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			s.logf("failed to parse message: %v", err)
			continue
		}
		if msg.Method == "" {
			continue
		}
		if err := s.handleMessage(&msg); err != nil {
			return err
		}
	}
}

func (s *Server) handleMessage(msg *rpcMessage) error {
	span := trace.Begin(s.tracer, trace.ScopeRequest, msg.Method, 0)
	defer span.End("")

	s.mu.Lock()
	shutdown := s.shutdownRequested
	s.mu.Unlock()
	if shutdown && msg.Method != "exit" {
		if len(msg.ID) > 0 {
			return s.sendError(msg.ID, codeInvalidRequest, "server is shutting down")
		}
		return nil
	}

	switch msg.Method {
	case "initialize":
		return s.handleInitialize(msg)
	case "initialized":
		return nil
	case "shutdown":
		return s.handleShutdown(msg)
	case "exit":
		if shutdown {
			return ErrExit
		}
		return ErrExitWithoutShutdown
	case "workspace/didChangeConfiguration":
		return s.handleDidChangeConfiguration(msg)
	case "textDocument/didOpen":
		return s.handleDidOpen(msg)
	case "textDocument/didChange":
		return s.handleDidChange(msg)
	case "textDocument/didSave":
		return s.handleDidSave(msg)
	case "textDocument/didClose":
		return s.handleDidClose(msg)
	case "textDocument/completion":
		return s.handleCompletion(msg)
	case "textDocument/documentSymbol":
		return s.handleDocumentSymbol(msg)
	case "workspace/symbol":
		return s.handleWorkspaceSymbol(msg)
	case "textDocument/formatting":
		return s.handleFormatting(msg)
	case "textDocument/rangeFormatting":
		return s.handleRangeFormatting(msg)
	case "textDocument/foldingRange":
		return s.handleFoldingRange(msg)
	default:
		if len(msg.ID) > 0 {
			return s.sendError(msg.ID, codeMethodNotFound, "method not found")
		}
		return nil
	}
}

func (s *Server) handleInitialize(msg *rpcMessage) error {
	var params initializeParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, codeInvalidParams, "invalid params")
		}
	}
	root := ""
	if params.RootURI != "" {
		root = uriToPath(params.RootURI)
	}
	if root == "" && params.RootPath != "" {
		root = params.RootPath
	}
	if root == "" && len(params.WorkspaceFolders) > 0 {
		root = uriToPath(params.WorkspaceFolders[0].URI)
	}
	if root != "" {
		if abs, err := filepath.Abs(root); err == nil {
			root = abs
		}
	}
	s.mu.Lock()
	s.workspaceRoot = root
	s.mu.Unlock()

	if root != "" {
		s.setupWorkspace(detectAnalysisScope(root, ""))
	}
	if len(params.InitializationOptions) > 0 {
		s.applySettings(params.InitializationOptions)
	}

	result := initializeResult{
		Capabilities: serverCapabilities{
			TextDocumentSync: textDocumentSyncOptions{
				OpenClose: true,
				Change:    textDocumentSyncFull,
				Save: saveOptions{
					IncludeText: true,
				},
			},
			CompletionProvider: &completionOptions{
				TriggerCharacters: []string{".", ":"},
			},
			DocumentSymbolProvider:          true,
			WorkspaceSymbolProvider:         true,
			DocumentFormattingProvider:      true,
			DocumentRangeFormattingProvider: true,
			FoldingRangeProvider:            true,
		},
		ServerInfo: &serverInfo{Name: "lunar", Version: s.version},
	}
	return s.sendResponse(msg.ID, result)
}

// setupWorkspace reads lunar.toml and starts indexing. It runs once, either
// from initialize or from the first opened file.
func (s *Server) setupWorkspace(root string, mode analysisMode) {
	cfg := project.Default()
	if mode == modeProjectRoot {
		loaded, err := project.Discover(root)
		if err != nil {
			s.logf("config: %v", err)
		} else {
			cfg = loaded
		}
	}

	s.mu.Lock()
	if s.scopeResolved {
		s.mu.Unlock()
		return
	}
	s.scopeResolved = true
	s.analysisRoot = root
	s.analysisMode = mode
	next := settingsFromConfig(cfg)
	for _, lua := range s.clientSettings {
		next = s.mergeSettings(next, lua)
	}
	s.settings = next
	var index *workspace.Index
	if mode != modeOpenFiles && root != "" {
		index = workspace.NewIndex(root, workspace.Options{
			Version:  s.settings.version,
			Excludes: s.settings.excludes,
			Cache:    s.cache,
		})
		s.index = index
	}
	s.mu.Unlock()

	trace.Point(s.tracer, trace.ScopeDriver, "workspace", fmt.Sprintf("%s %s", mode, root))
	if index != nil {
		s.rebuildIndex()
		if s.watch {
			s.startWatcher(index)
		}
	}
}

// rebuildIndex reindexes the workspace in the background, cancelling a
// build that is still running.
func (s *Server) rebuildIndex() {
	s.mu.Lock()
	index := s.index
	if index == nil {
		s.mu.Unlock()
		return
	}
	if s.indexCancel != nil {
		s.indexCancel()
	}
	ctx, cancel := context.WithCancel(s.baseCtx)
	s.indexCancel = cancel
	s.mu.Unlock()

	s.bg.Add(1)
	go func() {
		defer s.bg.Done()
		started := time.Now()
		err := index.Build(ctx, nil)
		if err != nil {
			if ctx.Err() == nil {
				s.logf("workspace index failed: %v", err)
			}
			return
		}
		if s.currentTrace() {
			s.logf("indexed %d files under %s in %s", index.Len(), index.Root(), time.Since(started).Round(time.Millisecond))
		}
	}()
}

func (s *Server) startWatcher(index *workspace.Index) {
	w, err := workspace.NewWatcher(index, workspace.DefaultDebounce, func(ev workspace.Event) {
		if ev.Err != nil && !workspace.IsSyntaxError(ev.Err) {
			s.logf("watch %s: %v", ev.Path, ev.Err)
		}
	})
	if err != nil {
		s.logf("file watching disabled: %v", err)
		return
	}
	if err := w.Start(s.baseCtx); err != nil {
		s.logf("file watching disabled: %v", err)
		w.Stop()
		return
	}
	s.mu.Lock()
	s.watcher = w
	s.mu.Unlock()
}

func (s *Server) stopBackground() {
	s.mu.Lock()
	if s.indexCancel != nil {
		s.indexCancel()
		s.indexCancel = nil
	}
	w := s.watcher
	s.watcher = nil
	for _, doc := range s.docs {
		if doc.timer != nil {
			doc.timer.Stop()
		}
	}
	s.mu.Unlock()
	if w != nil {
		w.Stop()
	}
	s.bg.Wait()
}

func (s *Server) handleShutdown(msg *rpcMessage) error {
	s.mu.Lock()
	s.shutdownRequested = true
	s.mu.Unlock()
	s.stopBackground()
	s.clearPublishedDiagnostics()
	return s.sendResponse(msg.ID, nil)
}

func (s *Server) handleDidOpen(msg *rpcMessage) error {
	var params didOpenTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}
	uri := canonicalURI(params.TextDocument.URI)
	if uri == "" {
		return nil
	}
	path := uriToPath(uri)

	s.mu.Lock()
	resolved := s.scopeResolved
	s.mu.Unlock()
	if !resolved && path != "" {
		s.setupWorkspace(detectAnalysisScope("", path))
	}

	s.mu.Lock()
	s.docs[uri] = &document{
		uri:     uri,
		path:    path,
		text:    params.TextDocument.Text,
		version: params.TextDocument.Version,
	}
	s.mu.Unlock()
	s.scheduleDiagnostics(uri)
	return nil
}

func (s *Server) handleDidChange(msg *rpcMessage) error {
	var params didChangeTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}
	uri := canonicalURI(params.TextDocument.URI)
	if uri == "" {
		return nil
	}
	s.mu.Lock()
	doc, ok := s.docs[uri]
	if !ok {
		s.mu.Unlock()
		s.logf("didChange for unknown document %s", uri)
		return nil
	}
	doc.text = applyChanges(doc.text, params.ContentChanges)
	doc.version = params.TextDocument.Version
	verbose := s.traceLSP
	s.mu.Unlock()
	if verbose {
		s.logf("didChange: uri=%s version=%d", uri, params.TextDocument.Version)
	}
	s.scheduleDiagnostics(uri)
	return nil
}

func (s *Server) handleDidSave(msg *rpcMessage) error {
	var params didSaveTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}
	uri := canonicalURI(params.TextDocument.URI)
	if uri == "" {
		return nil
	}
	s.mu.Lock()
	doc, ok := s.docs[uri]
	if ok && params.Text != nil {
		doc.text = *params.Text
	}
	s.mu.Unlock()
	if ok {
		// luacheck may read neighbouring files, so a save reruns it
		s.scheduleDiagnostics(uri)
	}
	return nil
}

func (s *Server) handleDidClose(msg *rpcMessage) error {
	var params didCloseTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}
	uri := canonicalURI(params.TextDocument.URI)
	if uri == "" {
		return nil
	}
	s.mu.Lock()
	doc, ok := s.docs[uri]
	if ok && doc.timer != nil {
		doc.timer.Stop()
	}
	delete(s.docs, uri)
	_, hadDiagnostics := s.published[uri]
	delete(s.published, uri)
	index := s.index
	s.mu.Unlock()
	if hadDiagnostics {
		if err := s.sendPublish(uri, nil, nil); err != nil {
			s.logf("failed to clear diagnostics: %v", err)
		}
	}
	if ok && index != nil && doc.path != "" {
		if err := index.ClearOverlay(s.baseCtx, doc.path); err != nil {
			s.logf("reindex %s: %v", doc.path, err)
		}
	}
	return nil
}

func (s *Server) sendResponse(id json.RawMessage, result any) error {
	msg := map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"result":  result,
	}
	return s.send(msg)
}

func (s *Server) sendError(id json.RawMessage, code int, message string) error {
	msg := map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"error": rpcError{
			Code:    code,
			Message: message,
		},
	}
	return s.send(msg)
}

func (s *Server) sendPublish(uri string, version *int, list []lspDiagnostic) error {
	if list == nil {
		list = []lspDiagnostic{}
	}
	msg := map[string]any{
		"jsonrpc": "2.0",
		"method":  "textDocument/publishDiagnostics",
		"params": publishDiagnosticsParams{
			URI:         uri,
			Version:     version,
			Diagnostics: list,
		},
	}
	return s.send(msg)
}

func (s *Server) send(msg any) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	if err := writeMessage(s.out, payload); err != nil {
		return err
	}
	return s.out.Flush()
}

func (s *Server) logf(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	fmt.Fprintf(os.Stderr, "lsp: %s\n", line)
	trace.Point(s.tracer, trace.ScopeRequest, "log", line)
}
