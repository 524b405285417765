package cloud

import "encoding/json"

// LoginResponse is the decoded response of POST /WManage/api/login.
type LoginResponse struct {
	Success bool    `json:"success"`
	Admin   bool    `json:"admin"`
	Username string `json:"username"`
	UserID   int    `json:"userId"`
	Plants   []Plant `json:"plants"`
}

// Plant is one station/site entry as returned by the plant-list endpoints.
type Plant struct {
	PlantID  int    `json:"plantId"`
	Name     string `json:"name"`
	Country  string `json:"country"`
	Timezone string `json:"timezone"`
	Continent string `json:"continent"`
	Region    string `json:"region"`
}

// PlantListResponse wraps the paged plant list.
type PlantListResponse struct {
	Total int     `json:"total"`
	Rows  []Plant `json:"rows"`
}

// Device is one row of a device-list response: an inverter or a GridBOSS.
type Device struct {
	SerialNum  string `json:"serialNum"`
	DeviceType string `json:"deviceType"`
	PlantID    int    `json:"plantId"`
	Status     int    `json:"status"`
}

// DeviceListResponse wraps a plant's device list.
type DeviceListResponse struct {
	Success bool     `json:"success"`
	Rows    []Device `json:"rows"`
}

// ParallelGroup is one parallel-connected cluster of inverters.
type ParallelGroup struct {
	ParallelGroup string   `json:"parallelGroup"`
	Members       []string `json:"members"`
}

// ParallelGroupResponse wraps the parallel-group detail query.
type ParallelGroupResponse struct {
	Success        bool            `json:"success"`
	ParallelGroups []ParallelGroup `json:"parallelGroups"`
}

// InverterRuntimeResponse is the JSON shape of get_inverter_runtime, field
// names grounded on original_source/tests/unit/test_client.py and
// _mid_runtime_properties.py's sibling inverter runtime module.
type InverterRuntimeResponse struct {
	Success    bool    `json:"success"`
	SerialNum  string  `json:"serialNum"`
	ServerTime int64   `json:"serverTime"`
	SOC        *int    `json:"soc"`
	SOH        *int    `json:"soh"`
	PPV        *float64 `json:"ppv"`
	Ppv1       *float64 `json:"ppv1"`
	Ppv2       *float64 `json:"ppv2"`
	Ppv3       *float64 `json:"ppv3"`
	Vpv1       *float64 `json:"vpv1"`
	Vpv2       *float64 `json:"vpv2"`
	Vpv3       *float64 `json:"vpv3"`
	VBat       *float64 `json:"vBat"`
	PCharge    *float64 `json:"pCharge"`
	PDisCharge *float64 `json:"pDisCharge"`
	VacR       *float64 `json:"vacr"`
	VacS       *float64 `json:"vacs"`
	VacT       *float64 `json:"vact"`
	Fac        *float64 `json:"fac"`
	PinV       *float64 `json:"pinv"`
	PToUser    *float64 `json:"pToUser"`
	PToGrid    *float64 `json:"pToGrid"`
	PLoad      *float64 `json:"pLoad"`
	SocSOHWord *int     `json:"socSoh"`
}

// InverterEnergyResponse is the JSON shape of get_inverter_energy.
type InverterEnergyResponse struct {
	Success   bool    `json:"success"`
	SerialNum string  `json:"serialNum"`
	SOC       *int    `json:"soc"`
	EpvToday  *float64 `json:"epvToday"`
	Epv1Today *float64 `json:"epv1Today"`
	Epv2Today *float64 `json:"epv2Today"`
	EChgToday *float64 `json:"eChgToday"`
	EDisChgToday *float64 `json:"eDisChgToday"`
	EToUserToday *float64 `json:"eToUserToday"`
	EToGridToday *float64 `json:"eToGridToday"`
	ELoadToday   *float64 `json:"eLoadToday"`
	EpvTotal     *float64 `json:"epvTotal"`
	EChgTotal    *float64 `json:"eChgTotal"`
	EDisChgTotal *float64 `json:"eDisChgTotal"`
	EToUserTotal *float64 `json:"eToUserTotal"`
	EToGridTotal *float64 `json:"eToGridTotal"`
	ELoadTotal   *float64 `json:"eLoadTotal"`
}

// BatteryUnit is one individually-reported module in a battery-info response.
type BatteryUnit struct {
	BatterySN    string   `json:"batterySN"`
	BatteryCapacityAh *float64 `json:"batteryCapacity"`
	Voltage      *float64 `json:"totalVoltage"`
	Current      *float64 `json:"current"`
	SOC          *int     `json:"soc"`
	SOH          *int     `json:"soh"`
	CycleCount   *float64 `json:"cycleCnt"`
	MaxCellVoltage *float64 `json:"maxCellVoltage"`
	MinCellVoltage *float64 `json:"minCellVoltage"`
}

// BatteryInfoResponse is the JSON shape of get_battery_info.
type BatteryInfoResponse struct {
	Success      bool          `json:"success"`
	SerialNum    string        `json:"serialNum"`
	SOC          *int          `json:"soc"`
	SOH          *int          `json:"soh"`
	Voltage      *float64      `json:"totalVoltage"`
	Current      *float64      `json:"current"`
	BatteryArray []BatteryUnit `json:"batteryArray"`
}

// MidboxRuntimeResponse is the JSON shape of get_midbox_runtime (GridBOSS).
// Only the aggregate fields are named here; smart-port fields come from a
// nested "smartPort" array.
type MidboxRuntimeResponse struct {
	Success    bool    `json:"success"`
	SerialNum  string  `json:"serialNum"`
	GridVoltage *float64 `json:"gridVoltage"`
	GridFreq    *float64 `json:"gridFreq"`
	SmartPort   []struct {
		Port            int      `json:"port"`
		Status          *int     `json:"status"`
		SmartLoadPower  *float64 `json:"smartLoadPower"`
		ACCoupleLXPower *float64 `json:"acCoupleLXPower"`
	} `json:"smartPort"`
}

// ParameterReadResponse is the flat key-value parameter read response:
// spec.md §4.4/original_source's control.py warns these are FLAT fields
// keyed by descriptive parameter name, not nested under "parameters".
type ParameterReadResponse struct {
	Success       bool           `json:"success"`
	SerialNum     string         `json:"serialNum"`
	DeviceType    string         `json:"deviceType"`
	StartRegister int            `json:"startRegister"`
	PointNumber   int            `json:"pointNumber"`
	Extra         map[string]any `json:"-"`
}

var parameterReadKnownFields = map[string]bool{
	"success": true, "serialNum": true, "deviceType": true,
	"startRegister": true, "pointNumber": true,
}

// UnmarshalJSON decodes the named fields normally and collects every other
// key into Extra, since the API returns parameter values as flat sibling
// fields rather than a nested object (original_source/endpoints/control.py).
func (r *ParameterReadResponse) UnmarshalJSON(data []byte) error {
	type alias ParameterReadResponse
	aux := alias{}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = ParameterReadResponse(aux)

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Extra = make(map[string]any, len(raw))
	for k, v := range raw {
		if parameterReadKnownFields[k] {
			continue
		}
		var val any
		if err := json.Unmarshal(v, &val); err == nil {
			r.Extra[k] = val
		}
	}
	return nil
}

// Parameters returns the flat parameter map, keyed by descriptive parameter
// name (e.g. "HOLD_SYSTEM_CHARGE_SOC_LIMIT"). Numeric values are truncated
// to int and booleans become 1/0; values of any other JSON type are omitted.
func (r *ParameterReadResponse) Parameters() map[string]int {
	out := make(map[string]int, len(r.Extra))
	for k, v := range r.Extra {
		switch val := v.(type) {
		case float64:
			out[k] = int(val)
		case bool:
			if val {
				out[k] = 1
			} else {
				out[k] = 0
			}
		}
	}
	return out
}

// SuccessResponse is the generic {"success": bool} envelope most control
// endpoints return.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// QuickChargeStatusResponse is the decoded quick-charge status query.
type QuickChargeStatusResponse struct {
	Success                   bool `json:"success"`
	HasUnclosedQuickChargeTask bool `json:"hasUnclosedQuickChargeTask"`
}
