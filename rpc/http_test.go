package rpc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/roothash-pay/auditBounty/core/state"
	"github.com/roothash-pay/auditBounty/custody"
	"github.com/roothash-pay/auditBounty/native/bounty"
	"github.com/roothash-pay/auditBounty/storage"
)

const (
	testAdmin   = "0x00000000000000000000000000000000000000a1"
	testAccount = "0x0000000000000000000000000000000000000001"
)

func newTestServer(t *testing.T) (*Server, *custody.MemoryVault) {
	t.Helper()
	manager := state.NewManager(storage.NewMemDB())
	vault := custody.NewMemoryVault()
	engine := bounty.NewEngine()
	engine.SetState(manager)
	engine.SetVault(vault)
	engine.SetPauses(manager)

	admin, err := parseAddress(testAdmin)
	if err != nil {
		t.Fatalf("parse admin: %v", err)
	}
	if err := manager.GrantRole(bounty.RoleAdmin, admin[:]); err != nil {
		t.Fatalf("grant admin: %v", err)
	}
	if err := engine.SetSupported(admin, "BTY", true); err != nil {
		t.Fatalf("register asset: %v", err)
	}
	return NewServer(engine, nil), vault
}

func call(t *testing.T, srv *Server, method string, params interface{}) RPCResponse {
	t.Helper()
	var rawParams []json.RawMessage
	if params != nil {
		encoded, err := json.Marshal(params)
		if err != nil {
			t.Fatalf("marshal params: %v", err)
		}
		rawParams = []json.RawMessage{encoded}
	}
	body, err := json.Marshal(RPCRequest{JSONRPC: jsonRPCVersion, Method: method, Params: rawParams, ID: 1})
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	var resp RPCResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return resp
}

func TestUnknownMethod(t *testing.T) {
	srv, _ := newTestServer(t)
	resp := call(t, srv, "bounty_nope", nil)
	if resp.Error == nil || resp.Error.Code != codeMethodNotFound {
		t.Fatalf("expected method-not-found, got %+v", resp.Error)
	}
}

func TestKnownAssetsAndTokenStats(t *testing.T) {
	srv, vault := newTestServer(t)
	vault.CreditReserve("BTY", big.NewInt(500))

	resp := call(t, srv, "bounty_knownAssets", nil)
	if resp.Error != nil {
		t.Fatalf("known assets: %+v", resp.Error)
	}

	resp = call(t, srv, "bounty_tokenStats", tokenStatsParams{Asset: "bty"})
	if resp.Error != nil {
		t.Fatalf("token stats: %+v", resp.Error)
	}
	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatalf("unexpected result %T", resp.Result)
	}
	if result["balance"] != "500" {
		t.Fatalf("expected balance 500, got %v", result["balance"])
	}
}

func TestErrorCodesAreDistinguishable(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := call(t, srv, "bounty_claim", claimParams{Asset: "BTY", Account: testAccount})
	if resp.Error == nil || resp.Error.Code != codeNoPendingReward {
		t.Fatalf("expected no-pending code, got %+v", resp.Error)
	}

	resp = call(t, srv, "bounty_fund", fundParams{Payer: testAccount, Asset: "GHO", Amount: "10"})
	if resp.Error == nil || resp.Error.Code != codeUnsupportedAsset {
		t.Fatalf("expected unsupported-asset code, got %+v", resp.Error)
	}

	resp = call(t, srv, "bounty_setSupported", setSupportedParams{Caller: testAccount, Asset: "NEW", Supported: true})
	if resp.Error == nil || resp.Error.Code != codeRoleDenied {
		t.Fatalf("expected role-denied code, got %+v", resp.Error)
	}
}

func TestInvalidParamsRejected(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := call(t, srv, "bounty_claim", claimParams{Asset: "BTY", Account: "not-an-address"})
	if resp.Error == nil || resp.Error.Code != codeInvalidParams {
		t.Fatalf("expected invalid-params, got %+v", resp.Error)
	}
	resp = call(t, srv, "bounty_claim", nil)
	if resp.Error == nil || resp.Error.Code != codeInvalidParams {
		t.Fatalf("expected invalid-params for missing object, got %+v", resp.Error)
	}
}

func TestErrorCodeMappingTable(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{bounty.ErrInvalidAsset, codeInvalidAsset},
		{bounty.ErrUnsupportedAsset, codeUnsupportedAsset},
		{bounty.ErrInvalidAccount, codeInvalidAccount},
		{bounty.ErrInvalidAmount, codeInvalidAmount},
		{bounty.ErrAmountMismatch, codeAmountMismatch},
		{bounty.ErrArrayLengthMismatch, codeArrayLengthMismatch},
		{bounty.ErrEmptyBatch, codeEmptyBatch},
		{bounty.ErrCapacityExceeded, codeCapacityExceeded},
		{bounty.ErrNoPendingReward, codeNoPendingReward},
		{bounty.ErrInsufficientBalance, codeInsufficientBalance},
		{bounty.ErrTransferFailed, codeTransferFailed},
		{bounty.ErrNoSurplus, codeNoSurplus},
		{bounty.ErrExceedsSurplus, codeExceedsSurplus},
		{bounty.ErrUnauthorized, codeRoleDenied},
		{bounty.ErrSystemPaused, codeSystemPaused},
	}
	for _, tc := range cases {
		if got := errorCode(tc.err); got != tc.code {
			t.Fatalf("error %v mapped to %d, want %d", tc.err, got, tc.code)
		}
		wrapped := fmt.Errorf("context: %w", tc.err)
		if got := errorCode(wrapped); got != tc.code {
			t.Fatalf("wrapped %v mapped to %d, want %d", tc.err, got, tc.code)
		}
	}
}
