package catalog

import "VyapaarAI/internal/entity"

// Prices are in INR.
var defaultEntries = []entity.CatalogEntry{
	{Name: "Complan Classic Creme", Price: 290},
	{Name: "Complan Kesar Badam", Price: 310},
	{Name: "Complan Nutrigro Badam Kheer", Price: 325},
	{Name: "Complan Pista Badam", Price: 310},
	{Name: "Complan Royal Chocolate", Price: 290},
	{Name: "Dermi Cool", Price: 55},
	{Name: "EY AAAM TULSI TURMERIC FACEWASH50G", Price: 85},
	{Name: "EY ADVANCED GOLDEN GLOW PEEL OFF M- 50G", Price: 145},
	{Name: "EY ADVANCED GOLDEN GLOW PEEL OFF M- 90G", Price: 225},
	{Name: "EY EXF WALNUT SCRUB AYR 200G", Price: 180},
	{Name: "EY HALDICHANDAN FP HF POWDER 25G", Price: 45},
	{Name: "EY HYD-EXF WALNT APR SCRUB AYR100G", Price: 120},
	{Name: "EY HYDR - EXF WALNUT APRICOT SCRUB 50G", Price: 75},
	{Name: "EY NAT GLOW ORANGE PEEL OFF AY 90G", Price: 195},
	{Name: "EY NATURALS NEEM FACE WASH AY 50G", Price: 85},
	{Name: "EY RJ CUCUMBER ALOEVERA FACEPAK50G", Price: 95},
	{Name: "EY TAN CHOCO CHERRY PACK 50G", Price: 145},
	{Name: "EY_SCR_PURIFYING_EXFOLTNG_NEEM_PAPAYA_50G", Price: 95},
	{Name: "Everyuth Naturals Body Lotion Nourishing Cocoa 200ml", Price: 195},
	{Name: "Everyuth Naturals Body Lotion Rejuvenating Flora 200ml", Price: 195},
	{Name: "Everyuth Naturals Body Lotion Soothing Citrus 200ml", Price: 195},
	{Name: "Everyuth Naturals Body Lotion Sun Care Berries SPF 15 200ml", Price: 225},
	{Name: "Gatsby Deo Shield", Price: 199},
	{Name: "Glucon D Nimbu Pani 1-KG", Price: 210},
	{Name: "Glucon D Regular 1-KG", Price: 195},
	{Name: "Glucon D Regular 2-KG", Price: 380},
	{Name: "Glucon D Tangy orange 1-KG", Price: 210},
	{Name: "Lux Purple", Price: 45},
	{Name: "Nutralite ACHARI MAYO 300g-275g-25g-", Price: 135},
	{Name: "Nutralite ACHARI MAYO 30g", Price: 25},
	{Name: "Nutralite CHEESY GARLIC MAYO 300g-275g-25g-", Price: 145},
	{Name: "Nutralite CHEESY GARLIC MAYO 30g", Price: 30},
	{Name: "Nutralite CHOCO SPREAD CALCIUM 275g", Price: 175},
	{Name: "Nutralite DOODHSHAKTHI PURE GHEE 1L", Price: 599},
	{Name: "Nutralite TANDOORI MAYO 300g-275g-25g-", Price: 135},
	{Name: "Nutralite TANDOORI MAYO 30g", Price: 25},
	{Name: "Nutralite VEG MAYO 300g-275g-25g-", Price: 125},
	{Name: "Nycil Prickly Heat Powder", Price: 85},
	{Name: "SUGAR FREE GOLD 500 PELLET", Price: 295},
	{Name: "SUGAR FREE GOLD POWDER 100GM", Price: 235},
	{Name: "SUGAR FREE GOLD SACHET 50", Price: 85},
	{Name: "SUGAR FREE GRN 300 PELLET", Price: 245},
	{Name: "SUGAR FREE NATURA 500 PELLET", Price: 275},
	{Name: "SUGAR FREE NATURA DIET SUGAR", Price: 195},
	{Name: "SUGAR FREE NATURA DIET SUGAR 80GM", Price: 165},
	{Name: "SUGAR FREE NATURA SACHET 50", Price: 85},
	{Name: "SUGAR FREE NATURA SWEET DROPS", Price: 145},
	{Name: "SUGAR FREE NATURA_ POWDER_CONC_100G", Price: 235},
	{Name: "SUGAR FREE_GRN_ POWDER_CONC_100G", Price: 235},
	{Name: "SUGARLITE POUCH 500G", Price: 155},
}
