package fakeledger

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/bnema/link-portal-cli/internal/domain"
	"github.com/mr-tron/base58"
)

type request struct {
	ID     json.RawMessage   `json:"id"`
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

type rpcError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type simulationFailure struct {
	Err  interface{} `json:"err"`
	Logs []string    `json:"logs"`
}

func (l *Ledger) serveHTTP(w http.ResponseWriter, r *http.Request) {
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	l.mu.Lock()
	l.calls[req.Method]++
	if faults := l.httpFaults[req.Method]; len(faults) > 0 {
		l.httpFaults[req.Method] = faults[1:]
		l.mu.Unlock()
		http.Error(w, http.StatusText(faults[0]), faults[0])
		return
	}
	result, rpcErr := l.dispatch(req)
	l.mu.Unlock()

	response := map[string]interface{}{"jsonrpc": "2.0", "id": req.ID}
	if rpcErr != nil {
		response["error"] = rpcErr
	} else {
		response["result"] = result
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(response)
}

func (l *Ledger) dispatch(req request) (interface{}, *rpcError) {
	switch req.Method {
	case "getLatestBlockhash":
		l.blockhash = sha256.Sum256(l.blockhash[:])
		l.issued[l.blockhash] = true
		return contextual(map[string]interface{}{
			"blockhash":            base58.Encode(l.blockhash[:]),
			"lastValidBlockHeight": 100,
		}), nil
	case "getAccountInfo":
		key, err := identityParam(req.Params, 0)
		if err != nil {
			return nil, invalidParams(err)
		}
		data, ok := l.accounts[key]
		if !ok {
			return contextual(nil), nil
		}
		return contextual(map[string]interface{}{
			"data":       []string{base64.StdEncoding.EncodeToString(pad(data)), "base64"},
			"owner":      l.opts.ProgramID.String(),
			"lamports":   1_000_000,
			"executable": false,
			"rentEpoch":  0,
		}), nil
	case "getSignatureStatuses":
		var signatures []string
		if len(req.Params) < 1 || json.Unmarshal(req.Params[0], &signatures) != nil {
			return nil, invalidParams(errors.New("expected signature list"))
		}
		statuses := make([]interface{}, len(signatures))
		for i, signature := range signatures {
			if l.statuses[signature] {
				statuses[i] = map[string]interface{}{
					"slot":               1,
					"confirmations":      nil,
					"err":                nil,
					"confirmationStatus": "finalized",
				}
			}
		}
		return contextual(statuses), nil
	case "sendTransaction":
		var encoded string
		if len(req.Params) < 1 || json.Unmarshal(req.Params[0], &encoded) != nil {
			return nil, invalidParams(errors.New("expected transaction"))
		}
		raw, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, invalidParams(err)
		}
		return l.execute(raw)
	default:
		return nil, &rpcError{Code: -32601, Message: "Method not found"}
	}
}

func (l *Ledger) execute(raw []byte) (interface{}, *rpcError) {
	tx, err := parseTransaction(raw)
	if err != nil {
		return nil, &rpcError{Code: -32602, Message: "invalid transaction: " + err.Error()}
	}

	if len(tx.signatures) != tx.requiredSigs || tx.requiredSigs > len(tx.keys) {
		return nil, &rpcError{Code: -32003, Message: "Transaction signature verification failure"}
	}
	for i, signature := range tx.signatures {
		if !ed25519.Verify(ed25519.PublicKey(tx.keys[i][:]), tx.message, signature) {
			return nil, &rpcError{Code: -32003, Message: "Transaction signature verification failure"}
		}
	}
	if !l.issued[tx.blockhash] {
		return nil, preflight("Blockhash not found", "BlockhashNotFound", nil)
	}

	staged := make(map[domain.Identity][]byte, len(l.accounts))
	for key, data := range l.accounts {
		staged[key] = data
	}
	for i, ix := range tx.instructions {
		if failure := l.run(tx, i, ix, staged); failure != nil {
			return nil, failure
		}
	}
	l.accounts = staged

	signature := base58.Encode(tx.signatures[0])
	l.statuses[signature] = true
	return signature, nil
}

func (l *Ledger) run(tx transaction, index int, ix compiledInstruction, accounts map[domain.Identity][]byte) *rpcError {
	fail := func(code uint32, logs ...string) *rpcError {
		return preflight(
			fmt.Sprintf("Error processing Instruction %d: custom program error: %#x", index, code),
			map[string]interface{}{"InstructionError": []interface{}{index, map[string]uint32{"Custom": code}}},
			logs,
		)
	}

	if tx.keys[ix.programIndex] != l.opts.ProgramID {
		return preflight("Error processing Instruction: incorrect program id",
			map[string]interface{}{"InstructionError": []interface{}{index, "IncorrectProgramId"}}, nil)
	}
	if len(ix.data) < 8 {
		return fail(101, "Program log: AnchorError occurred. Error Code: InstructionFallbackNotFound. Error Number: 101.")
	}

	switch string(ix.data[:8]) {
	case l.instructionTag("initialize"):
		if len(ix.accounts) < 3 {
			return fail(3005, "Program log: AnchorError occurred. Error Code: AccountNotEnoughKeys. Error Number: 3005.")
		}
		base, user := ix.accounts[0], ix.accounts[1]
		if !tx.isSigner(base) || !tx.isSigner(user) {
			return fail(3010, "Program log: AnchorError caused by account: base_account. Error Code: AccountNotSigner. Error Number: 3010.")
		}
		if _, exists := accounts[tx.keys[base]]; exists {
			return fail(0, fmt.Sprintf("Allocate: account Address { address: %s, base: None } already in use", tx.keys[base]))
		}
		accounts[tx.keys[base]] = l.emptyRecord()
		return nil

	case l.instructionTag(l.opts.AppendInstruction):
		if len(ix.accounts) < 2 {
			return fail(3005, "Program log: AnchorError occurred. Error Code: AccountNotEnoughKeys. Error Number: 3005.")
		}
		base, user := ix.accounts[0], ix.accounts[1]
		if !tx.isSigner(user) {
			return fail(3010, "Program log: AnchorError caused by account: user. Error Code: AccountNotSigner. Error Number: 3010.")
		}
		record, exists := accounts[tx.keys[base]]
		if !exists {
			return fail(3012, "Program log: AnchorError caused by account: base_account. Error Code: AccountNotInitialized. Error Number: 3012.")
		}
		args := ix.data[8:]
		if len(args) < 4 || int(binary.LittleEndian.Uint32(args)) != len(args)-4 {
			return fail(102, "Program log: AnchorError occurred. Error Code: InstructionDidNotDeserialize. Error Number: 102.")
		}
		accounts[tx.keys[base]] = appendEntry(record, Entry{Link: string(args[4:]), Submitter: tx.keys[user]})
		return nil

	default:
		return fail(101, "Program log: AnchorError occurred. Error Code: InstructionFallbackNotFound. Error Number: 101.")
	}
}

func preflight(message string, txErr interface{}, logs []string) *rpcError {
	if logs == nil {
		logs = []string{}
	}
	return &rpcError{
		Code:    -32002,
		Message: "Transaction simulation failed: " + message,
		Data:    simulationFailure{Err: txErr, Logs: logs},
	}
}

func invalidParams(err error) *rpcError {
	return &rpcError{Code: -32602, Message: "Invalid params: " + err.Error()}
}

func contextual(value interface{}) map[string]interface{} {
	return map[string]interface{}{
		"context": map[string]interface{}{"slot": 1},
		"value":   value,
	}
}

func identityParam(params []json.RawMessage, index int) (domain.Identity, error) {
	if len(params) <= index {
		return domain.Identity{}, errors.New("missing account")
	}
	var raw string
	if err := json.Unmarshal(params[index], &raw); err != nil {
		return domain.Identity{}, err
	}
	return domain.ParseIdentity(raw)
}
