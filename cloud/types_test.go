package cloud

import (
	"encoding/json"
	"testing"
)

func TestParameterReadResponseUnmarshalExtra(t *testing.T) {
	data := []byte(`{
		"success": true,
		"serialNum": "SN12345",
		"deviceType": "PV_SERIES",
		"startRegister": 0,
		"pointNumber": 2,
		"HOLD_SYSTEM_CHARGE_SOC_LIMIT": 50,
		"HOLD_AC_CHARGE_ENABLE": true
	}`)

	var resp ParameterReadResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.Success || resp.SerialNum != "SN12345" || resp.PointNumber != 2 {
		t.Errorf("known fields not decoded correctly: %+v", resp)
	}
	if _, ok := resp.Extra["success"]; ok {
		t.Error("known field 'success' leaked into Extra")
	}

	params := resp.Parameters()
	if params["HOLD_SYSTEM_CHARGE_SOC_LIMIT"] != 50 {
		t.Errorf("got %v, want 50", params["HOLD_SYSTEM_CHARGE_SOC_LIMIT"])
	}
	if params["HOLD_AC_CHARGE_ENABLE"] != 1 {
		t.Errorf("got %v, want 1 (bool coerced to int)", params["HOLD_AC_CHARGE_ENABLE"])
	}
}

func TestParameterReadResponseParametersFalseBool(t *testing.T) {
	data := []byte(`{"success": true, "HOLD_AC_CHARGE_ENABLE": false}`)
	var resp ParameterReadResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := resp.Parameters()["HOLD_AC_CHARGE_ENABLE"]; got != 0 {
		t.Errorf("got %v, want 0", got)
	}
}
