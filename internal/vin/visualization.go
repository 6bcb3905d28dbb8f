package vin

// Visualization is the finite set of vehicle silhouettes the storefront can
// render.
type Visualization string

const (
	Sedan     Visualization = "Sedan"
	Coupe     Visualization = "Coupe"
	Hatchback Visualization = "Hatchback"
	SUV       Visualization = "SUV"
	Truck     Visualization = "Truck"
	Van       Visualization = "Van"
	SUT       Visualization = "SUT"
)

// bodyClassVisualization maps registry body-class strings, including the long
// NHTSA forms, to a visualization.
var bodyClassVisualization = map[string]Visualization{
	"Sedan":     Sedan,
	"Coupe":     Coupe,
	"Hatchback": Hatchback,
	"SUV":       SUV,
	"Truck":     Truck,
	"Van":       Van,

	"Sedan/Saloon": Sedan,
	"Sport Utility Vehicle (SUV)/Multi-Purpose Vehicle (MPV)": SUV,
	"Sport Utility Vehicle":                                   SUV,
	"Crossover Utility Vehicle (CUV)":                         SUV,
	"Multi-Purpose Vehicle":                                   Van,
	"Pickup":                                                  Truck,
	"Hatchback/Liftback/Notchback":                            Hatchback,
	"Truck-Tractor":                                           Truck,
	"Pickup Truck":                                            Truck,
	"Sport Utility Truck (SUT)":                               SUT,
	"Minivan":                                                 Van,
	"Cargo Van":                                               Van,
}

// VisualizationFor resolves a body class to its visualization. Unrecognized
// body classes fall back to Sedan so a decode never blocks rendering.
func VisualizationFor(bodyClass string) Visualization {
	if v, ok := bodyClassVisualization[bodyClass]; ok {
		return v
	}
	return Sedan
}
