package rpc

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/roothash-pay/auditBounty/native/bounty"
)

const (
	jsonRPCVersion  = "2.0"
	maxRequestBytes = 1 << 20 // 1 MiB

	ratePerSecond = 10
	rateBurst     = 20
)

const (
	codeParseError     = -32700
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeServerError    = -32000
	codeUnauthorized   = -32001
	codeRateLimited    = -32020

	codeInvalidAsset        = -32100
	codeUnsupportedAsset    = -32101
	codeInvalidAccount      = -32102
	codeInvalidAmount       = -32103
	codeAmountMismatch      = -32104
	codeArrayLengthMismatch = -32105
	codeEmptyBatch          = -32106
	codeCapacityExceeded    = -32107
	codeNoPendingReward     = -32108
	codeInsufficientBalance = -32109
	codeTransferFailed      = -32110
	codeNoSurplus           = -32111
	codeExceedsSurplus      = -32112
	codeRoleDenied          = -32113
	codeSystemPaused        = -32114
)

// Server exposes the bounty engine over JSON-RPC. Authorization of ledger
// operations stays inside the engine (role checks on the caller address);
// the optional bearer token only gates transport access to mutating methods.
type Server struct {
	engine *bounty.Engine
	log    *slog.Logger

	authToken string

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewServer creates an RPC server bound to the given engine. The bearer token
// is read from BOUNTY_RPC_TOKEN; when unset, mutating methods are open.
func NewServer(engine *bounty.Engine, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		engine:    engine,
		log:       log,
		authToken: strings.TrimSpace(os.Getenv("BOUNTY_RPC_TOKEN")),
		limiters:  make(map[string]*rate.Limiter),
	}
}

// Router returns the HTTP handler serving the JSON-RPC endpoint together
// with the metrics and health endpoints.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Post("/", s.handle)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

// Start serves the router on the given address and blocks.
func (s *Server) Start(addr string) error {
	s.log.Info("starting JSON-RPC server", "addr", addr)
	return http.ListenAndServe(addr, s.Router())
}

// RPCRequest is a single JSON-RPC 2.0 request envelope.
type RPCRequest struct {
	JSONRPC string            `json:"jsonrpc"`
	Method  string            `json:"method"`
	Params  []json.RawMessage `json:"params"`
	ID      interface{}       `json:"id"`
}

type RPCResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *RPCError   `json:"error,omitempty"`
}

type RPCError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func writeError(w http.ResponseWriter, status int, id interface{}, code int, message string) {
	if status <= 0 {
		status = http.StatusBadRequest
	}
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(RPCResponse{
		JSONRPC: jsonRPCVersion,
		ID:      id,
		Error:   &RPCError{Code: code, Message: message},
	})
}

func writeResult(w http.ResponseWriter, id interface{}, result interface{}) {
	_ = json.NewEncoder(w).Encode(RPCResponse{JSONRPC: jsonRPCVersion, ID: id, Result: result})
}

func (s *Server) limiter(source string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.limiters[source]
	if !ok {
		l = rate.NewLimiter(ratePerSecond, rateBurst)
		s.limiters[source] = l
	}
	return l
}

func (s *Server) authorized(r *http.Request) bool {
	if s.authToken == "" {
		return true
	}
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return subtle.ConstantTimeCompare([]byte(token), []byte(s.authToken)) == 1
}

func remoteSource(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if !s.limiter(remoteSource(r)).Allow() {
		writeError(w, http.StatusTooManyRequests, nil, codeRateLimited, "rate limit exceeded")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, nil, codeInvalidRequest, "unable to read request body")
		return
	}
	if len(body) > maxRequestBytes {
		writeError(w, http.StatusRequestEntityTooLarge, nil, codeInvalidRequest, "request body too large")
		return
	}

	var req RPCRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, nil, codeParseError, "invalid JSON payload")
		return
	}
	if req.JSONRPC != "" && req.JSONRPC != jsonRPCVersion {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidRequest, "unsupported JSON-RPC version")
		return
	}

	handler, ok := s.methods()[req.Method]
	if !ok {
		writeError(w, http.StatusNotFound, req.ID, codeMethodNotFound, "unknown method "+req.Method)
		return
	}
	if handler.mutating && !s.authorized(r) {
		writeError(w, http.StatusUnauthorized, req.ID, codeUnauthorized, "missing or invalid bearer token")
		return
	}
	handler.fn(w, req.ID, req.Params)
}

type method struct {
	mutating bool
	fn       func(w http.ResponseWriter, id interface{}, params []json.RawMessage)
}

func (s *Server) methods() map[string]method {
	return map[string]method{
		"bounty_setSupported":    {mutating: true, fn: s.handleSetSupported},
		"bounty_knownAssets":     {fn: s.handleKnownAssets},
		"bounty_fund":            {mutating: true, fn: s.handleFund},
		"bounty_batchAdd":        {mutating: true, fn: s.handleBatchAdd},
		"bounty_batchSet":        {mutating: true, fn: s.handleBatchSet},
		"bounty_batchClear":      {mutating: true, fn: s.handleBatchClear},
		"bounty_claim":           {mutating: true, fn: s.handleClaim},
		"bounty_withdrawSurplus": {mutating: true, fn: s.handleWithdrawSurplus},
		"bounty_userInfo":        {fn: s.handleUserInfo},
		"bounty_tokenStats":      {fn: s.handleTokenStats},
		"bounty_pause":           {mutating: true, fn: s.handlePause},
		"bounty_unpause":         {mutating: true, fn: s.handleUnpause},
		"bounty_grantRole":       {mutating: true, fn: s.handleGrantRole},
		"bounty_revokeRole":      {mutating: true, fn: s.handleRevokeRole},
	}
}

// errorCode maps engine sentinels to distinct JSON-RPC error codes so
// calling tooling can react per failure kind.
func errorCode(err error) int {
	switch {
	case errors.Is(err, bounty.ErrInvalidAsset):
		return codeInvalidAsset
	case errors.Is(err, bounty.ErrUnsupportedAsset):
		return codeUnsupportedAsset
	case errors.Is(err, bounty.ErrInvalidAccount):
		return codeInvalidAccount
	case errors.Is(err, bounty.ErrInvalidAmount):
		return codeInvalidAmount
	case errors.Is(err, bounty.ErrAmountMismatch):
		return codeAmountMismatch
	case errors.Is(err, bounty.ErrArrayLengthMismatch):
		return codeArrayLengthMismatch
	case errors.Is(err, bounty.ErrEmptyBatch):
		return codeEmptyBatch
	case errors.Is(err, bounty.ErrCapacityExceeded):
		return codeCapacityExceeded
	case errors.Is(err, bounty.ErrNoPendingReward):
		return codeNoPendingReward
	case errors.Is(err, bounty.ErrInsufficientBalance):
		return codeInsufficientBalance
	case errors.Is(err, bounty.ErrTransferFailed):
		return codeTransferFailed
	case errors.Is(err, bounty.ErrNoSurplus):
		return codeNoSurplus
	case errors.Is(err, bounty.ErrExceedsSurplus):
		return codeExceedsSurplus
	case errors.Is(err, bounty.ErrUnauthorized):
		return codeRoleDenied
	case errors.Is(err, bounty.ErrSystemPaused):
		return codeSystemPaused
	}
	return codeServerError
}

func writeEngineError(w http.ResponseWriter, id interface{}, err error) {
	writeError(w, http.StatusOK, id, errorCode(err), err.Error())
}
