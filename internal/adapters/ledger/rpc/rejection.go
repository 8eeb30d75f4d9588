package rpc

import (
	"encoding/json"

	"github.com/bnema/link-portal-cli/internal/domain"
)

type simulationData struct {
	Err  json.RawMessage `json:"err"`
	Logs []string        `json:"logs"`
}

func (e *rpcError) rejection() *domain.LedgerRejection {
	rejection := &domain.LedgerRejection{Code: e.Code, Message: e.Message, InstructionIndex: -1}

	if len(e.Data) == 0 {
		return rejection
	}
	var data simulationData
	if err := json.Unmarshal(e.Data, &data); err != nil {
		return rejection
	}
	rejection.Logs = data.Logs
	applyTransactionError(rejection, data.Err)

	return rejection
}

// applyTransactionError fills the reason fields from a runtime error value.
// The runtime serialises it as a bare string ("AccountNotFound"), a map with
// one key ({"InsufficientFundsForRent": {...}}) or an instruction error
// ({"InstructionError": [0, "MissingRequiredSignature"]} or
// {"InstructionError": [0, {"Custom": 3012}]}).
func applyTransactionError(rejection *domain.LedgerRejection, raw json.RawMessage) {
	if len(raw) == 0 || string(raw) == "null" {
		return
	}

	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		rejection.Reason = name
		return
	}

	var object map[string]json.RawMessage
	if err := json.Unmarshal(raw, &object); err != nil {
		return
	}

	instruction, ok := object["InstructionError"]
	if !ok {
		for key := range object {
			rejection.Reason = key
			return
		}
		return
	}

	var pair []json.RawMessage
	if err := json.Unmarshal(instruction, &pair); err != nil || len(pair) != 2 {
		rejection.Reason = "InstructionError"
		return
	}
	if err := json.Unmarshal(pair[0], &rejection.InstructionIndex); err != nil {
		rejection.InstructionIndex = -1
	}

	if err := json.Unmarshal(pair[1], &name); err == nil {
		rejection.Reason = name
		return
	}

	var detail map[string]json.RawMessage
	if err := json.Unmarshal(pair[1], &detail); err != nil {
		rejection.Reason = "InstructionError"
		return
	}
	if custom, ok := detail["Custom"]; ok {
		var code uint32
		if err := json.Unmarshal(custom, &code); err == nil {
			rejection.Reason = "Custom"
			rejection.Custom = &code
			return
		}
	}
	for key := range detail {
		rejection.Reason = key
		return
	}
}
