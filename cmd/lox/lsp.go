package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/textproto"
	"os"
	"strconv"

	"github.com/oarkflow/json"
)

const (
	rpcInvalidParams  = -32602
	rpcMethodNotFound = -32601
)

// nullResult is sent where a response result is JSON null.
var nullResult = json.RawMessage("null")

type rpcRequest struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      *json.RawMessage `json:"id,omitempty"`
	Method  string           `json:"method,omitempty"`
	Params  json.RawMessage  `json:"params,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// rpcMessage is a response when ID is set and a notification otherwise.
type rpcMessage struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      *json.RawMessage `json:"id,omitempty"`
	Method  string           `json:"method,omitempty"`
	Params  any              `json:"params,omitempty"`
	Result  any              `json:"result,omitempty"`
	Error   *rpcError        `json:"error,omitempty"`
}

func reply(req rpcRequest, result any) rpcMessage {
	if result == nil {
		result = nullResult
	}
	return rpcMessage{JSONRPC: "2.0", ID: req.ID, Result: result}
}

func replyError(req rpcRequest, code int, message string) rpcMessage {
	return rpcMessage{JSONRPC: "2.0", ID: req.ID, Error: &rpcError{Code: code, Message: message}}
}

func notify(method string, params any) rpcMessage {
	return rpcMessage{JSONRPC: "2.0", Method: method, Params: params}
}

type textDocumentID struct {
	URI string `json:"uri"`
}

type documentPositionParams struct {
	TextDocument textDocumentID `json:"textDocument"`
	Position     lspPosition    `json:"position"`
}

type didOpenParams struct {
	TextDocument struct {
		URI  string `json:"uri"`
		Text string `json:"text"`
	} `json:"textDocument"`
}

type didChangeParams struct {
	TextDocument   textDocumentID `json:"textDocument"`
	ContentChanges []struct {
		Text string `json:"text"`
	} `json:"contentChanges"`
}

type didCloseParams struct {
	TextDocument textDocumentID `json:"textDocument"`
}

type lspHandler func(s *lspServer, req rpcRequest) []rpcMessage

// lspHandlers maps each supported method to its handler. Requests for other
// methods get a method-not-found error; notifications are ignored.
var lspHandlers = map[string]lspHandler{
	"initialize":              (*lspServer).initialize,
	"initialized":             ignoreRequest,
	"shutdown":                (*lspServer).shutdown,
	"exit":                    ignoreRequest,
	"textDocument/didOpen":    (*lspServer).didOpen,
	"textDocument/didChange":  (*lspServer).didChange,
	"textDocument/didClose":   (*lspServer).didClose,
	"textDocument/completion": (*lspServer).completion,
	"textDocument/hover":      (*lspServer).hover,
}

func ignoreRequest(*lspServer, rpcRequest) []rpcMessage { return nil }

// lspServer speaks the language server protocol over a Content-Length
// framed stream. Documents are synced in full.
type lspServer struct {
	headers *textproto.Reader
	body    *bufio.Reader
	out     *bufio.Writer
	docs    map[string]string
}

func newLSPServer(r io.Reader, w io.Writer) *lspServer {
	br := bufio.NewReader(r)
	return &lspServer{
		headers: textproto.NewReader(br),
		body:    br,
		out:     bufio.NewWriter(w),
		docs:    make(map[string]string),
	}
}

func runLSP() error {
	return newLSPServer(os.Stdin, os.Stdout).serve()
}

func (s *lspServer) serve() error {
	for {
		payload, err := s.readMessage()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		var req rpcRequest
		if err := json.Unmarshal(payload, &req); err != nil {
			continue
		}
		for _, msg := range s.handleMessage(req) {
			if err := s.writeMessage(msg); err != nil {
				return err
			}
		}
		if req.Method == "exit" {
			return nil
		}
	}
}

func (s *lspServer) handleMessage(req rpcRequest) []rpcMessage {
	handler, ok := lspHandlers[req.Method]
	if !ok {
		if req.ID == nil {
			return nil
		}
		return []rpcMessage{replyError(req, rpcMethodNotFound, "method not found")}
	}
	return handler(s, req)
}

// readMessage reads one framed payload. Header names match case
// insensitively and headers other than Content-Length are ignored.
func (s *lspServer) readMessage() ([]byte, error) {
	header, err := s.headers.ReadMIMEHeader()
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, io.EOF
		}
		return nil, err
	}
	value := header.Get("Content-Length")
	if value == "" {
		return nil, errors.New("missing Content-Length header")
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return nil, fmt.Errorf("invalid Content-Length %q", value)
	}
	payload := make([]byte, n)
	if _, err := io.ReadFull(s.body, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func (s *lspServer) writeMessage(msg rpcMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.out, "Content-Length: %d\r\n\r\n", len(data)); err != nil {
		return err
	}
	if _, err := s.out.Write(data); err != nil {
		return err
	}
	return s.out.Flush()
}

func (s *lspServer) initialize(req rpcRequest) []rpcMessage {
	return []rpcMessage{reply(req, map[string]any{
		"capabilities": map[string]any{
			"textDocumentSync":   1,
			"hoverProvider":      true,
			"completionProvider": map[string]any{"resolveProvider": false},
		},
		"serverInfo": map[string]any{"name": lspSource},
	})}
}

func (s *lspServer) shutdown(req rpcRequest) []rpcMessage {
	if req.ID == nil {
		return nil
	}
	return []rpcMessage{reply(req, nil)}
}

func (s *lspServer) didOpen(req rpcRequest) []rpcMessage {
	var params didOpenParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return nil
	}
	return s.update(params.TextDocument.URI, params.TextDocument.Text)
}

func (s *lspServer) didChange(req rpcRequest) []rpcMessage {
	var params didChangeParams
	if err := json.Unmarshal(req.Params, &params); err != nil || len(params.ContentChanges) == 0 {
		return nil
	}
	latest := params.ContentChanges[len(params.ContentChanges)-1].Text
	return s.update(params.TextDocument.URI, latest)
}

// didClose forgets the document and clears its diagnostics in the client.
func (s *lspServer) didClose(req rpcRequest) []rpcMessage {
	var params didCloseParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return nil
	}
	delete(s.docs, params.TextDocument.URI)
	return []rpcMessage{notify("textDocument/publishDiagnostics", publishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []lspDiagnostic{},
	})}
}

func (s *lspServer) update(uri, text string) []rpcMessage {
	s.docs[uri] = text
	return []rpcMessage{notify("textDocument/publishDiagnostics", publishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnosticsForSource(text),
	})}
}

func (s *lspServer) completion(req rpcRequest) []rpcMessage {
	if req.ID == nil {
		return nil
	}
	var params documentPositionParams
	_ = json.Unmarshal(req.Params, &params)
	return []rpcMessage{reply(req, completionList{
		Items: completionItems(declaredNames(s.docs[params.TextDocument.URI])),
	})}
}

func (s *lspServer) hover(req rpcRequest) []rpcMessage {
	if req.ID == nil {
		return nil
	}
	var params documentPositionParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return []rpcMessage{replyError(req, rpcInvalidParams, "invalid hover params")}
	}
	source := s.docs[params.TextDocument.URI]
	word := wordAtPosition(source, params.Position.Line, params.Position.Character)
	if word == "" {
		return []rpcMessage{reply(req, nil)}
	}
	return []rpcMessage{reply(req, hoverResult{
		Contents: markupContent{
			Kind:  "markdown",
			Value: fmt.Sprintf("`%s`\n\n%s", word, describeWord(source, word)),
		},
	})}
}
