package syncer

// warehouseLocation is the known city and country for a warehouse code.
// Warehouse payloads carry no address of their own, so the address rows for
// warehouses are minted locally from this table and linked after the address
// stage has run.
type warehouseLocation struct {
	City    string
	Country string
}

var warehouseGazetteer = map[string]warehouseLocation{
	"LDW": {City: "London", Country: "United Kingdom"},
	"ER3": {City: "Rotterdam", Country: "Netherlands"},
	"VEW": {City: "Veldhoven", Country: "Netherlands"},
	"LBZ": {City: "Labège", Country: "France"},
	"LPB": {City: "Leipzig", Country: "Germany"},
	"YYZ": {City: "Toronto", Country: "Canada"},
	"SYD": {City: "Sydney", Country: "Australia"},
	"LPP": {City: "Lappeenranta", Country: "Finland"},
	"MXW": {City: "Manassas", Country: "United States"},
	"SIW": {City: "Singapore", Country: "Singapore"},
	"SOA": {City: "Soacha", Country: "Colombia"},
	"CSW": {City: "Columbus", Country: "United States"},
	"TYO": {City: "Tokyo", Country: "Japan"},
	"DXB": {City: "Dubai", Country: "United Arab Emirates"},
	"MEX": {City: "Mexico City", Country: "Mexico"},
	"MRS": {City: "Marseille", Country: "France"},
	"JER": {City: "Jersey", Country: "United Kingdom"},
	"IND": {City: "Indianapolis", Country: "United States"},
}
