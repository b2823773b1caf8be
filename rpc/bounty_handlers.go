package rpc

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"strings"
)

type setSupportedParams struct {
	Caller    string `json:"caller"`
	Asset     string `json:"asset"`
	Supported bool   `json:"supported"`
}

type fundParams struct {
	Payer         string `json:"payer"`
	Asset         string `json:"asset"`
	Amount        string `json:"amount"`
	AttachedValue string `json:"attachedValue,omitempty"`
}

type batchParams struct {
	Operator string   `json:"operator"`
	Asset    string   `json:"asset"`
	Accounts []string `json:"accounts"`
	Amounts  []string `json:"amounts,omitempty"`
}

type claimParams struct {
	Asset   string `json:"asset"`
	Account string `json:"account"`
}

type withdrawSurplusParams struct {
	Operator string `json:"operator"`
	Asset    string `json:"asset"`
	To       string `json:"to"`
	Amount   string `json:"amount"`
}

type userInfoParams struct {
	Asset   string `json:"asset"`
	Account string `json:"account"`
}

type tokenStatsParams struct {
	Asset string `json:"asset"`
}

type pauseParams struct {
	Caller string `json:"caller"`
}

type roleParams struct {
	Caller  string `json:"caller"`
	Role    string `json:"role"`
	Address string `json:"address"`
}

type tokenStatsResult struct {
	Asset   string `json:"asset"`
	Funded  string `json:"funded"`
	Pending string `json:"pending"`
	Claimed string `json:"claimed"`
	Balance string `json:"balance"`
}

type userInfoResult struct {
	Asset   string `json:"asset"`
	Account string `json:"account"`
	Pending string `json:"pending"`
}

func decodeParams(params []json.RawMessage, out interface{}) error {
	if len(params) != 1 {
		return fmt.Errorf("expected a single params object")
	}
	return json.Unmarshal(params[0], out)
}

func parseAddress(s string) ([20]byte, error) {
	var addr [20]byte
	trimmed := strings.TrimPrefix(strings.TrimSpace(s), "0x")
	raw, err := hex.DecodeString(trimmed)
	if err != nil {
		return addr, fmt.Errorf("invalid address %q", s)
	}
	if len(raw) != len(addr) {
		return addr, fmt.Errorf("invalid address %q: expected 20 bytes", s)
	}
	copy(addr[:], raw)
	return addr, nil
}

func parseAmount(s string) (*big.Int, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil, fmt.Errorf("amount must not be empty")
	}
	amount, ok := new(big.Int).SetString(trimmed, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	return amount, nil
}

func formatAddress(addr [20]byte) string {
	return "0x" + hex.EncodeToString(addr[:])
}

func (s *Server) handleSetSupported(w http.ResponseWriter, id interface{}, params []json.RawMessage) {
	var p setSupportedParams
	if err := decodeParams(params, &p); err != nil {
		writeError(w, http.StatusBadRequest, id, codeInvalidParams, err.Error())
		return
	}
	caller, err := parseAddress(p.Caller)
	if err != nil {
		writeError(w, http.StatusBadRequest, id, codeInvalidParams, err.Error())
		return
	}
	if err := s.engine.SetSupported(caller, p.Asset, p.Supported); err != nil {
		writeEngineError(w, id, err)
		return
	}
	writeResult(w, id, true)
}

func (s *Server) handleKnownAssets(w http.ResponseWriter, id interface{}, _ []json.RawMessage) {
	assets, err := s.engine.KnownAssets()
	if err != nil {
		writeEngineError(w, id, err)
		return
	}
	writeResult(w, id, assets)
}

func (s *Server) handleFund(w http.ResponseWriter, id interface{}, params []json.RawMessage) {
	var p fundParams
	if err := decodeParams(params, &p); err != nil {
		writeError(w, http.StatusBadRequest, id, codeInvalidParams, err.Error())
		return
	}
	payer, err := parseAddress(p.Payer)
	if err != nil {
		writeError(w, http.StatusBadRequest, id, codeInvalidParams, err.Error())
		return
	}
	amount, err := parseAmount(p.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, id, codeInvalidParams, err.Error())
		return
	}
	var attached *big.Int
	if strings.TrimSpace(p.AttachedValue) != "" {
		attached, err = parseAmount(p.AttachedValue)
		if err != nil {
			writeError(w, http.StatusBadRequest, id, codeInvalidParams, err.Error())
			return
		}
	}
	if err := s.engine.Fund(payer, p.Asset, amount, attached); err != nil {
		writeEngineError(w, id, err)
		return
	}
	writeResult(w, id, true)
}

func (p *batchParams) decode(withAmounts bool) ([20]byte, [][20]byte, []*big.Int, error) {
	operator, err := parseAddress(p.Operator)
	if err != nil {
		return [20]byte{}, nil, nil, err
	}
	accounts := make([][20]byte, 0, len(p.Accounts))
	for _, raw := range p.Accounts {
		account, err := parseAddress(raw)
		if err != nil {
			return [20]byte{}, nil, nil, err
		}
		accounts = append(accounts, account)
	}
	if !withAmounts {
		return operator, accounts, nil, nil
	}
	amounts := make([]*big.Int, 0, len(p.Amounts))
	for _, raw := range p.Amounts {
		amount, err := parseAmount(raw)
		if err != nil {
			return [20]byte{}, nil, nil, err
		}
		amounts = append(amounts, amount)
	}
	return operator, accounts, amounts, nil
}

func (s *Server) handleBatchAdd(w http.ResponseWriter, id interface{}, params []json.RawMessage) {
	var p batchParams
	if err := decodeParams(params, &p); err != nil {
		writeError(w, http.StatusBadRequest, id, codeInvalidParams, err.Error())
		return
	}
	operator, accounts, amounts, err := p.decode(true)
	if err != nil {
		writeError(w, http.StatusBadRequest, id, codeInvalidParams, err.Error())
		return
	}
	if err := s.engine.BatchAdd(operator, p.Asset, accounts, amounts); err != nil {
		writeEngineError(w, id, err)
		return
	}
	writeResult(w, id, true)
}

func (s *Server) handleBatchSet(w http.ResponseWriter, id interface{}, params []json.RawMessage) {
	var p batchParams
	if err := decodeParams(params, &p); err != nil {
		writeError(w, http.StatusBadRequest, id, codeInvalidParams, err.Error())
		return
	}
	operator, accounts, amounts, err := p.decode(true)
	if err != nil {
		writeError(w, http.StatusBadRequest, id, codeInvalidParams, err.Error())
		return
	}
	if err := s.engine.BatchSet(operator, p.Asset, accounts, amounts); err != nil {
		writeEngineError(w, id, err)
		return
	}
	writeResult(w, id, true)
}

func (s *Server) handleBatchClear(w http.ResponseWriter, id interface{}, params []json.RawMessage) {
	var p batchParams
	if err := decodeParams(params, &p); err != nil {
		writeError(w, http.StatusBadRequest, id, codeInvalidParams, err.Error())
		return
	}
	operator, accounts, _, err := p.decode(false)
	if err != nil {
		writeError(w, http.StatusBadRequest, id, codeInvalidParams, err.Error())
		return
	}
	if err := s.engine.BatchClear(operator, p.Asset, accounts); err != nil {
		writeEngineError(w, id, err)
		return
	}
	writeResult(w, id, true)
}

func (s *Server) handleClaim(w http.ResponseWriter, id interface{}, params []json.RawMessage) {
	var p claimParams
	if err := decodeParams(params, &p); err != nil {
		writeError(w, http.StatusBadRequest, id, codeInvalidParams, err.Error())
		return
	}
	account, err := parseAddress(p.Account)
	if err != nil {
		writeError(w, http.StatusBadRequest, id, codeInvalidParams, err.Error())
		return
	}
	if err := s.engine.Claim(p.Asset, account); err != nil {
		writeEngineError(w, id, err)
		return
	}
	writeResult(w, id, true)
}

func (s *Server) handleWithdrawSurplus(w http.ResponseWriter, id interface{}, params []json.RawMessage) {
	var p withdrawSurplusParams
	if err := decodeParams(params, &p); err != nil {
		writeError(w, http.StatusBadRequest, id, codeInvalidParams, err.Error())
		return
	}
	operator, err := parseAddress(p.Operator)
	if err != nil {
		writeError(w, http.StatusBadRequest, id, codeInvalidParams, err.Error())
		return
	}
	to, err := parseAddress(p.To)
	if err != nil {
		writeError(w, http.StatusBadRequest, id, codeInvalidParams, err.Error())
		return
	}
	amount, err := parseAmount(p.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, id, codeInvalidParams, err.Error())
		return
	}
	if err := s.engine.WithdrawSurplus(operator, p.Asset, to, amount); err != nil {
		writeEngineError(w, id, err)
		return
	}
	writeResult(w, id, true)
}

func (s *Server) handleUserInfo(w http.ResponseWriter, id interface{}, params []json.RawMessage) {
	var p userInfoParams
	if err := decodeParams(params, &p); err != nil {
		writeError(w, http.StatusBadRequest, id, codeInvalidParams, err.Error())
		return
	}
	account, err := parseAddress(p.Account)
	if err != nil {
		writeError(w, http.StatusBadRequest, id, codeInvalidParams, err.Error())
		return
	}
	pending, err := s.engine.UserInfo(p.Asset, account)
	if err != nil {
		writeEngineError(w, id, err)
		return
	}
	writeResult(w, id, userInfoResult{
		Asset:   strings.ToUpper(strings.TrimSpace(p.Asset)),
		Account: formatAddress(account),
		Pending: pending.String(),
	})
}

func (s *Server) handleTokenStats(w http.ResponseWriter, id interface{}, params []json.RawMessage) {
	var p tokenStatsParams
	if err := decodeParams(params, &p); err != nil {
		writeError(w, http.StatusBadRequest, id, codeInvalidParams, err.Error())
		return
	}
	stats, err := s.engine.TokenStats(p.Asset)
	if err != nil {
		writeEngineError(w, id, err)
		return
	}
	writeResult(w, id, tokenStatsResult{
		Asset:   strings.ToUpper(strings.TrimSpace(p.Asset)),
		Funded:  stats.Funded.String(),
		Pending: stats.Pending.String(),
		Claimed: stats.Claimed.String(),
		Balance: stats.Balance.String(),
	})
}

func (s *Server) handlePause(w http.ResponseWriter, id interface{}, params []json.RawMessage) {
	var p pauseParams
	if err := decodeParams(params, &p); err != nil {
		writeError(w, http.StatusBadRequest, id, codeInvalidParams, err.Error())
		return
	}
	caller, err := parseAddress(p.Caller)
	if err != nil {
		writeError(w, http.StatusBadRequest, id, codeInvalidParams, err.Error())
		return
	}
	if err := s.engine.Pause(caller); err != nil {
		writeEngineError(w, id, err)
		return
	}
	writeResult(w, id, true)
}

func (s *Server) handleUnpause(w http.ResponseWriter, id interface{}, params []json.RawMessage) {
	var p pauseParams
	if err := decodeParams(params, &p); err != nil {
		writeError(w, http.StatusBadRequest, id, codeInvalidParams, err.Error())
		return
	}
	caller, err := parseAddress(p.Caller)
	if err != nil {
		writeError(w, http.StatusBadRequest, id, codeInvalidParams, err.Error())
		return
	}
	if err := s.engine.Unpause(caller); err != nil {
		writeEngineError(w, id, err)
		return
	}
	writeResult(w, id, true)
}

func (s *Server) handleGrantRole(w http.ResponseWriter, id interface{}, params []json.RawMessage) {
	var p roleParams
	if err := decodeParams(params, &p); err != nil {
		writeError(w, http.StatusBadRequest, id, codeInvalidParams, err.Error())
		return
	}
	caller, err := parseAddress(p.Caller)
	if err != nil {
		writeError(w, http.StatusBadRequest, id, codeInvalidParams, err.Error())
		return
	}
	address, err := parseAddress(p.Address)
	if err != nil {
		writeError(w, http.StatusBadRequest, id, codeInvalidParams, err.Error())
		return
	}
	if err := s.engine.GrantRole(caller, p.Role, address); err != nil {
		writeEngineError(w, id, err)
		return
	}
	writeResult(w, id, true)
}

func (s *Server) handleRevokeRole(w http.ResponseWriter, id interface{}, params []json.RawMessage) {
	var p roleParams
	if err := decodeParams(params, &p); err != nil {
		writeError(w, http.StatusBadRequest, id, codeInvalidParams, err.Error())
		return
	}
	caller, err := parseAddress(p.Caller)
	if err != nil {
		writeError(w, http.StatusBadRequest, id, codeInvalidParams, err.Error())
		return
	}
	address, err := parseAddress(p.Address)
	if err != nil {
		writeError(w, http.StatusBadRequest, id, codeInvalidParams, err.Error())
		return
	}
	if err := s.engine.RevokeRole(caller, p.Role, address); err != nil {
		writeEngineError(w, id, err)
		return
	}
	writeResult(w, id, true)
}
