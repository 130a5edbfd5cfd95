// Package catalogtest provides reference data fixtures for engine tests.
package catalogtest

import (
	"github.com/shopspring/decimal"

	"landed-cost/core/catalog"
	"landed-cost/core/types"
)

// Scenario dates of the demo dataset
const (
	Baseline    types.ScenarioDate = "2025-01-01"
	TariffShock types.ScenarioDate = "2025-04-01"
)

// Site IDs of the demo dataset
const (
	SupplierCN types.SiteID = "SUP_CN_SZ"
	SupplierDE types.SiteID = "SUP_DE_ST"
	SupplierRS types.SiteID = "SUP_RS_NI"
	PlantCH    types.SiteID = "BU_CH_MUR"
	PlantUS    types.SiteID = "PLANT_US_MI"
	PlantMX    types.SiteID = "PLANT_MX_NL"
)

// Countries of the demo dataset
const (
	China        types.Country = "China"
	Germany      types.Country = "Germany"
	Serbia       types.Country = "Serbia"
	Switzerland  types.Country = "Switzerland"
	UnitedStates types.Country = "United States"
	Mexico       types.Country = "Mexico"
)

// SKUs of the demo dataset
const (
	AX100 types.SKU = "ACTUATOR_AX100"
	AX200 types.SKU = "ACTUATOR_AX200"
)

// D parses a decimal literal
func D(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// P returns a pointer to a decimal literal
func P(s string) *decimal.Decimal {
	d := D(s)
	return &d
}

// DemoTables returns a small two-SKU network assembled in Switzerland,
// the United States or Mexico for the US market.
func DemoTables() catalog.Tables {
	return catalog.Tables{
		Products: []types.Product{
			{SKU: AX100, Description: "Actuator AX100", ListPrice: D("120"), TargetMarket: UnitedStates, UnitWeightKg: D("1.2")},
			{SKU: AX200, Description: "Actuator AX200", ListPrice: D("250"), TargetMarket: UnitedStates, UnitWeightKg: D("2")},
		},
		BOM: []types.BOMLine{
			{SKU: AX100, ComponentID: "MOTOR_01", QuantityPerUnit: D("1"), Yield: D("1")},
			{SKU: AX100, ComponentID: "PCB_01", QuantityPerUnit: D("2"), Yield: D("0.8")},
			{SKU: AX200, ComponentID: "MOTOR_01", QuantityPerUnit: D("2"), Yield: D("1")},
			{SKU: AX200, ComponentID: "GEARBOX_01", QuantityPerUnit: D("1"), Yield: D("1")},
			{SKU: AX200, ComponentID: "HOUSING_02", QuantityPerUnit: D("1"), Yield: D("0.5")},
		},
		Components: []types.Component{
			{ID: "MOTOR_01", Class: "Motor", UnitWeightKg: D("0.5"), BasePrice: D("20"), OriginSiteID: SupplierCN},
			{ID: "PCB_01", Class: "Electronics", UnitWeightKg: D("0.1"), BasePrice: D("12"), OriginSiteID: SupplierRS},
			{ID: "GEARBOX_01", Class: "Gearbox", UnitWeightKg: D("0.8"), BasePrice: D("35"), OriginSiteID: SupplierDE},
			{ID: "HOUSING_02", Class: "Housing", UnitWeightKg: D("1"), BasePrice: D("15"), OriginSiteID: SupplierRS},
		},
		Sites: []types.Site{
			{ID: SupplierCN, Country: China, City: "Shenzhen", Role: types.RoleOrigin},
			{ID: SupplierDE, Country: Germany, City: "Stuttgart", Role: types.RoleOrigin},
			{ID: SupplierRS, Country: Serbia, City: "Nis", Role: types.RoleOrigin},
			{ID: PlantCH, Country: Switzerland, City: "Murten", Role: types.RoleAssembly},
			{ID: PlantUS, Country: UnitedStates, City: "Monroe", Role: types.RoleAssembly},
			{ID: PlantMX, Country: Mexico, City: "Monterrey", Role: types.RoleAssembly},
		},
		AssemblyOptions: []types.AssemblyOption{
			{SKU: AX100, SiteID: PlantCH, BaseConversionCost: D("30")},
			{SKU: AX100, SiteID: PlantUS, BaseConversionCost: D("45")},
			{SKU: AX100, SiteID: PlantMX, BaseConversionCost: D("20")},
			{SKU: AX200, SiteID: PlantCH, BaseConversionCost: D("50")},
			{SKU: AX200, SiteID: PlantUS, BaseConversionCost: D("70")},
		},
		LogisticsLanes: []types.LogisticsLane{
			{From: China, To: Switzerland, CostPerKg: D("4"), LeadTimeDays: D("30"), FixedPerShipment: D("500")},
			{From: China, To: UnitedStates, CostPerKg: D("3"), LeadTimeDays: D("25"), FixedPerShipment: D("400")},
			{From: China, To: Mexico, CostPerKg: D("3.5"), LeadTimeDays: D("28")},
			{From: Germany, To: Switzerland, CostPerKg: D("1"), LeadTimeDays: D("3"), FixedPerShipment: D("100")},
			{From: Germany, To: UnitedStates, CostPerKg: D("2.5"), LeadTimeDays: D("14"), FixedPerShipment: D("200")},
			{From: Germany, To: Mexico, CostPerKg: D("2.5"), LeadTimeDays: D("16"), FixedPerShipment: D("200")},
			{From: Serbia, To: Switzerland, CostPerKg: D("1.5"), LeadTimeDays: D("4")},
			{From: Serbia, To: UnitedStates, CostPerKg: D("3"), LeadTimeDays: D("18")},
			{From: Serbia, To: Mexico, CostPerKg: D("3"), LeadTimeDays: D("20")},
			{From: Switzerland, To: UnitedStates, CostPerKg: D("2"), LeadTimeDays: D("10"), FixedPerShipment: D("1000")},
			{From: Mexico, To: UnitedStates, CostPerKg: D("0.5"), LeadTimeDays: D("3"), FixedPerShipment: D("100")},
		},
		TariffScenarios: []types.TariffScenario{
			{Date: Baseline, Label: "Baseline"},
			{Date: TariffShock, Label: "Tariff shock"},
		},
		BaseTariffRates: []types.BaseTariffRate{
			{Class: "Motor", Origin: China, Date: Baseline, RatePct: D("7.5")},
			{Class: "Motor", Origin: China, Date: TariffShock, RatePct: D("25")},
			{Class: "Electronics", Origin: Serbia, Date: Baseline, RatePct: D("0")},
			{Class: "Electronics", Origin: Serbia, Date: TariffShock, RatePct: D("10")},
			{Class: "Gearbox", Origin: Germany, Date: Baseline, RatePct: D("2.5")},
			{Class: "Gearbox", Origin: Germany, Date: TariffShock, RatePct: D("15")},
			{Class: types.FinalAssemblyClass, Origin: Switzerland, Date: Baseline, RatePct: D("10")},
			{Class: types.FinalAssemblyClass, Origin: Switzerland, Date: TariffShock, RatePct: D("15")},
			{Class: types.FinalAssemblyClass, Origin: Mexico, Date: Baseline, RatePct: D("0")},
			{Class: types.FinalAssemblyClass, Origin: Mexico, Date: TariffShock, RatePct: D("25")},
		},
		TariffOverridesTemplate: []types.TariffOverride{
			{Class: "Motor", Origin: China, DefaultRatePct: P("7.5")},
			{Class: "Gearbox", Origin: Germany, DefaultRatePct: P("2.5")},
			{Class: "Housing", Origin: Serbia, DefaultRatePct: P("5")},
		},
		MapNodes: []types.MapNode{
			{SiteID: SupplierCN, Country: China, City: "Shenzhen", Role: types.RoleOrigin, Lat: 22.54, Lon: 114.06},
			{SiteID: SupplierDE, Country: Germany, City: "Stuttgart", Role: types.RoleOrigin, Lat: 48.78, Lon: 9.18},
			{SiteID: SupplierRS, Country: Serbia, City: "Nis", Role: types.RoleOrigin, Lat: 43.32, Lon: 21.9},
			{SiteID: PlantCH, Country: Switzerland, City: "Murten", Role: types.RoleAssembly, Lat: 46.93, Lon: 7.12},
			{SiteID: PlantUS, Country: UnitedStates, City: "Monroe", Role: types.RoleAssembly, Lat: 41.92, Lon: -83.4},
			{SiteID: PlantMX, Country: Mexico, City: "Monterrey", Role: types.RoleAssembly, Lat: 25.69, Lon: -100.32},
		},
	}
}

// DemoStore returns the demo tables indexed as a Store
func DemoStore() *catalog.Store {
	return catalog.NewStore(DemoTables())
}
