package device

import "github.com/devskill-org/lxpclient/regmap"

func f(regs regmap.RawRegisters, m *regmap.RegisterMap, name string) *float64 {
	def, ok := m.Lookup(name)
	if !ok {
		return nil
	}
	v, ok := regmap.DecodeField(regs, def)
	if !ok {
		return nil
	}
	return &v
}

func i(regs regmap.RawRegisters, m *regmap.RegisterMap, name string) *int {
	v := f(regs, m, name)
	if v == nil {
		return nil
	}
	n := int(*v)
	return &n
}

func ptrFloat(v float64) *float64 { return &v }
func ptrInt(v int) *int           { return &v }
func ptrBool(v bool) *bool        { return &v }
