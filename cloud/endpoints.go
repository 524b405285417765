package cloud

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/devskill-org/lxpclient/transport"
)

// PlantEndpoints wraps the plant/station-level operations, grounded on
// original_source/tests/unit/test_client.py's TestPlantConfiguration and
// TestPlantDiscovery suites.
type PlantEndpoints struct{ client *Client }

// ListPlants returns the caller's accessible plants.
func (p *PlantEndpoints) ListPlants(ctx context.Context) (*PlantListResponse, error) {
	body, err := p.client.request(ctx, "/WManage/web/config/plant/list/viewer", url.Values{}, "plant_list", nil)
	if err != nil {
		return nil, err
	}
	var resp PlantListResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, transport.NewError(transport.ReadError, "list_plants", err)
	}
	return &resp, nil
}

// GetPlantDetail fetches one plant's configuration.
func (p *PlantEndpoints) GetPlantDetail(ctx context.Context, plantID int) (map[string]any, error) {
	form := url.Values{"plantId": {strconv.Itoa(plantID)}}
	body, err := p.client.request(ctx, "/WManage/web/config/plant/detail", form, "plant_detail", map[string]string{"plantId": strconv.Itoa(plantID)})
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, transport.NewError(transport.ReadError, "get_plant_detail", err)
	}
	return out, nil
}

// UpdatePlantConfig pushes a plant configuration change (e.g. daylight
// saving time, name, location); fields follows pylxpweb's
// _prepare_plant_update_data shape.
func (p *PlantEndpoints) UpdatePlantConfig(ctx context.Context, plantID int, fields map[string]string) (*SuccessResponse, error) {
	form := url.Values{"plantId": {strconv.Itoa(plantID)}}
	for k, v := range fields {
		form.Set(k, v)
	}
	body, err := p.client.postForm(ctx, "/WManage/web/config/plant/update", form, true)
	if err != nil {
		return nil, err
	}
	var resp SuccessResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, transport.NewError(transport.ReadError, "update_plant_config", err)
	}
	return &resp, nil
}

// SetDaylightSavingTime is a thin convenience wrapper over
// UpdatePlantConfig, grounded on test_client.py::test_set_daylight_saving_time.
func (p *PlantEndpoints) SetDaylightSavingTime(ctx context.Context, plantID int, enabled bool) (*SuccessResponse, error) {
	return p.UpdatePlantConfig(ctx, plantID, map[string]string{"daylightSavingTime": strconv.FormatBool(enabled)})
}

// DeviceEndpoints wraps per-device discovery and telemetry reads.
type DeviceEndpoints struct{ client *Client }

// ListDevices returns every device (inverter or GridBOSS) under a plant.
func (d *DeviceEndpoints) ListDevices(ctx context.Context, plantID int) (*DeviceListResponse, error) {
	form := url.Values{"plantId": {strconv.Itoa(plantID)}}
	body, err := d.client.request(ctx, "/WManage/web/monitor/device/list", form, "device_list", map[string]string{"plantId": strconv.Itoa(plantID)})
	if err != nil {
		return nil, err
	}
	var resp DeviceListResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, transport.NewError(transport.ReadError, "list_devices", err)
	}
	return &resp, nil
}

// GetParallelGroupDetail returns parallel-connected inverter clusters for a
// plant.
func (d *DeviceEndpoints) GetParallelGroupDetail(ctx context.Context, plantID int) (*ParallelGroupResponse, error) {
	form := url.Values{"plantId": {strconv.Itoa(plantID)}}
	body, err := d.client.request(ctx, "/WManage/web/monitor/device/parallelGroupDetails", form, "parallel_group", map[string]string{"plantId": strconv.Itoa(plantID)})
	if err != nil {
		return nil, err
	}
	var resp ParallelGroupResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, transport.NewError(transport.ReadError, "get_parallel_group_detail", err)
	}
	return &resp, nil
}

// GetInverterRuntime is the core telemetry read for a single inverter.
func (d *DeviceEndpoints) GetInverterRuntime(ctx context.Context, serial string) (*InverterRuntimeResponse, error) {
	form := url.Values{"serialNum": {serial}}
	body, err := d.client.request(ctx, "/WManage/web/monitor/device/inverterRuntime", form, "inverter_runtime", map[string]string{"serialNum": serial})
	if err != nil {
		return nil, err
	}
	var resp InverterRuntimeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, transport.NewError(transport.ReadError, "get_inverter_runtime", err)
	}
	return &resp, nil
}

// GetInverterEnergy is the today/lifetime energy-counter read.
func (d *DeviceEndpoints) GetInverterEnergy(ctx context.Context, serial string) (*InverterEnergyResponse, error) {
	form := url.Values{"serialNum": {serial}}
	body, err := d.client.request(ctx, "/WManage/web/monitor/device/inverterEnergyInfo", form, "inverter_energy", map[string]string{"serialNum": serial})
	if err != nil {
		return nil, err
	}
	var resp InverterEnergyResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, transport.NewError(transport.ReadError, "get_inverter_energy", err)
	}
	return &resp, nil
}

// GetParallelEnergy returns the aggregated energy counters across a
// parallel group, keyed the same way GetInverterEnergy is.
func (d *DeviceEndpoints) GetParallelEnergy(ctx context.Context, serial string) (*InverterEnergyResponse, error) {
	form := url.Values{"serialNum": {serial}}
	body, err := d.client.request(ctx, "/WManage/web/monitor/device/parallelEnergyInfo", form, "inverter_energy", map[string]string{"serialNum": serial})
	if err != nil {
		return nil, err
	}
	var resp InverterEnergyResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, transport.NewError(transport.ReadError, "get_parallel_energy", err)
	}
	return &resp, nil
}

// GetBatteryInfo returns the battery bank and individual module data.
func (d *DeviceEndpoints) GetBatteryInfo(ctx context.Context, serial string) (*BatteryInfoResponse, error) {
	form := url.Values{"serialNum": {serial}}
	body, err := d.client.request(ctx, "/WManage/web/monitor/device/batteryInfo", form, "battery_info", map[string]string{"serialNum": serial})
	if err != nil {
		return nil, err
	}
	var resp BatteryInfoResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, transport.NewError(transport.ReadError, "get_battery_info", err)
	}
	return &resp, nil
}

// GetMidboxRuntime returns the GridBOSS/MID grid-interface telemetry.
func (d *DeviceEndpoints) GetMidboxRuntime(ctx context.Context, serial string) (*MidboxRuntimeResponse, error) {
	form := url.Values{"serialNum": {serial}}
	body, err := d.client.request(ctx, "/WManage/web/monitor/device/midboxRuntime", form, "midbox_runtime", map[string]string{"serialNum": serial})
	if err != nil {
		return nil, err
	}
	var resp MidboxRuntimeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, transport.NewError(transport.ReadError, "get_midbox_runtime", err)
	}
	return &resp, nil
}

