package cloud

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/devskill-org/lxpclient/transport"
)

// ControlEndpoints wraps parameter read/write, function control, and quick
// charge/discharge operations, grounded directly on
// original_source/src/pylxpweb/endpoints/control.py's wire contract.
type ControlEndpoints struct{ client *Client }

// ReadParameters reads a window of named configuration parameters. The
// response is a flat key/value set (ParameterReadResponse.Parameters()),
// not nested addresses, unlike the local transports.
func (c *ControlEndpoints) ReadParameters(ctx context.Context, inverterSN string, startRegister, pointNumber int, autoRetry bool) (*ParameterReadResponse, error) {
	form := url.Values{
		"inverterSn":    {inverterSN},
		"startRegister": {strconv.Itoa(startRegister)},
		"pointNumber":   {strconv.Itoa(pointNumber)},
		"autoRetry":     {strconv.FormatBool(autoRetry)},
	}
	cacheParams := map[string]string{"sn": inverterSN, "start": strconv.Itoa(startRegister), "count": strconv.Itoa(pointNumber)}
	body, err := c.client.request(ctx, "/WManage/web/maintain/remoteRead/read", form, "parameter_read", cacheParams)
	if err != nil {
		return nil, err
	}
	var resp ParameterReadResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, transport.NewError(transport.ReadError, "read_parameters", err)
	}
	return &resp, nil
}

// WriteParameter writes a single named parameter by its descriptive hold
// name (e.g. "HOLD_SYSTEM_CHARGE_SOC_LIMIT").
func (c *ControlEndpoints) WriteParameter(ctx context.Context, inverterSN, holdParam, valueText string) (*SuccessResponse, error) {
	form := url.Values{
		"inverterSn":     {inverterSN},
		"holdParam":      {holdParam},
		"valueText":      {valueText},
		"clientType":     {"WEB"},
		"remoteSetType":  {"NORMAL"},
	}
	body, err := c.client.postForm(ctx, "/WManage/web/maintain/remoteSet/write", form, true)
	if err != nil {
		return nil, err
	}
	var resp SuccessResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, transport.NewError(transport.ReadError, "write_parameter", err)
	}
	return &resp, nil
}

// ControlFunction enables or disables a named device function (e.g.
// "FUNC_EPS_EN"). enable is sent as the literal string "true"/"false",
// matching the wire contract exactly.
func (c *ControlEndpoints) ControlFunction(ctx context.Context, inverterSN, functionParam string, enable bool) (*SuccessResponse, error) {
	enableStr := "false"
	if enable {
		enableStr = "true"
	}
	form := url.Values{
		"inverterSn":    {inverterSN},
		"functionParam": {functionParam},
		"enable":        {enableStr},
		"clientType":    {"WEB"},
		"remoteSetType": {"NORMAL"},
	}
	body, err := c.client.postForm(ctx, "/WManage/web/maintain/remoteSet/functionControl", form, true)
	if err != nil {
		return nil, err
	}
	var resp SuccessResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, transport.NewError(transport.ReadError, "control_function", err)
	}
	return &resp, nil
}

// StartQuickCharge starts a quick-charge cycle.
func (c *ControlEndpoints) StartQuickCharge(ctx context.Context, inverterSN string) (*SuccessResponse, error) {
	return c.quickCharge(ctx, "/WManage/web/config/quickCharge/start", inverterSN)
}

// StopQuickCharge stops an in-progress quick-charge cycle.
func (c *ControlEndpoints) StopQuickCharge(ctx context.Context, inverterSN string) (*SuccessResponse, error) {
	return c.quickCharge(ctx, "/WManage/web/config/quickCharge/stop", inverterSN)
}

func (c *ControlEndpoints) quickCharge(ctx context.Context, path, inverterSN string) (*SuccessResponse, error) {
	form := url.Values{"inverterSn": {inverterSN}, "clientType": {"WEB"}}
	body, err := c.client.postForm(ctx, path, form, true)
	if err != nil {
		return nil, err
	}
	var resp SuccessResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, transport.NewError(transport.ReadError, "quick_charge", err)
	}
	return &resp, nil
}

// GetQuickChargeStatus reports whether a quick-charge task is outstanding.
func (c *ControlEndpoints) GetQuickChargeStatus(ctx context.Context, inverterSN string) (*QuickChargeStatusResponse, error) {
	form := url.Values{"inverterSn": {inverterSN}}
	body, err := c.client.request(ctx, "/WManage/web/config/quickCharge/getStatusInfo", form, "quick_charge_status", map[string]string{"serialNum": inverterSN})
	if err != nil {
		return nil, err
	}
	var resp QuickChargeStatusResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, transport.NewError(transport.ReadError, "get_quick_charge_status", err)
	}
	return &resp, nil
}

// FirmwareStatus is the decoded firmware check/status response.
type FirmwareStatus struct {
	Success          bool   `json:"success"`
	CurrentVersion   string `json:"currentVersion"`
	LatestVersion    string `json:"latestVersion"`
	UpdateAvailable  bool   `json:"updateAvailable"`
	UpdateInProgress bool   `json:"updateInProgress"`
}

// CheckFirmware queries whether a newer firmware build is available.
func (c *ControlEndpoints) CheckFirmware(ctx context.Context, inverterSN string) (*FirmwareStatus, error) {
	return c.firmwareRequest(ctx, "/WManage/web/maintain/firmware/check", inverterSN)
}

// GetFirmwareStatus polls an in-progress firmware update.
func (c *ControlEndpoints) GetFirmwareStatus(ctx context.Context, inverterSN string) (*FirmwareStatus, error) {
	return c.firmwareRequest(ctx, "/WManage/web/maintain/firmware/status", inverterSN)
}

// CheckFirmwareEligibility checks preconditions (battery SOC, grid state)
// before a firmware update is allowed to start.
func (c *ControlEndpoints) CheckFirmwareEligibility(ctx context.Context, inverterSN string) (*FirmwareStatus, error) {
	return c.firmwareRequest(ctx, "/WManage/web/maintain/firmware/eligibility", inverterSN)
}

// StartFirmwareUpdate begins a firmware update.
func (c *ControlEndpoints) StartFirmwareUpdate(ctx context.Context, inverterSN string) (*SuccessResponse, error) {
	form := url.Values{"inverterSn": {inverterSN}}
	body, err := c.client.postForm(ctx, "/WManage/web/maintain/firmware/start", form, true)
	if err != nil {
		return nil, err
	}
	var resp SuccessResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, transport.NewError(transport.ReadError, "start_firmware_update", err)
	}
	return &resp, nil
}

func (c *ControlEndpoints) firmwareRequest(ctx context.Context, path, inverterSN string) (*FirmwareStatus, error) {
	form := url.Values{"inverterSn": {inverterSN}}
	body, err := c.client.postForm(ctx, path, form, true)
	if err != nil {
		return nil, err
	}
	var resp FirmwareStatus
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, transport.NewError(transport.ReadError, "firmware_request", err)
	}
	return &resp, nil
}

// GetChartData fetches a named chart series (e.g. power, soc) over a date
// range; the response is intentionally untyped since chart series layouts
// vary by chart name.
func (c *ControlEndpoints) GetChartData(ctx context.Context, inverterSN, chartName, date string) (map[string]any, error) {
	form := url.Values{"serialNum": {inverterSN}, "chartName": {chartName}, "date": {date}}
	body, err := c.client.postForm(ctx, "/WManage/web/monitor/device/chart", form, true)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, transport.NewError(transport.ReadError, "get_chart_data", err)
	}
	return out, nil
}

// GetEnergyBreakdown fetches the day's energy-flow breakdown (self-use,
// export, import) for a device.
func (c *ControlEndpoints) GetEnergyBreakdown(ctx context.Context, inverterSN, date string) (map[string]any, error) {
	form := url.Values{"serialNum": {inverterSN}, "date": {date}}
	body, err := c.client.postForm(ctx, "/WManage/web/monitor/device/energyBreakdown", form, true)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, transport.NewError(transport.ReadError, "get_energy_breakdown", err)
	}
	return out, nil
}

// GetForecast fetches the vendor's production/consumption forecast.
func (c *ControlEndpoints) GetForecast(ctx context.Context, plantID int) (map[string]any, error) {
	form := url.Values{"plantId": {strconv.Itoa(plantID)}}
	body, err := c.client.postForm(ctx, "/WManage/web/monitor/plant/forecast", form, true)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, transport.NewError(transport.ReadError, "get_forecast", err)
	}
	return out, nil
}

// ExportData requests a data export (CSV/XLSX generation job) for a device
// over a date range; the response carries a job or download reference.
func (c *ControlEndpoints) ExportData(ctx context.Context, inverterSN, startDate, endDate string) (map[string]any, error) {
	form := url.Values{"serialNum": {inverterSN}, "startDate": {startDate}, "endDate": {endDate}}
	body, err := c.client.postForm(ctx, "/WManage/web/monitor/device/export", form, true)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, transport.NewError(transport.ReadError, "export_data", err)
	}
	return out, nil
}
