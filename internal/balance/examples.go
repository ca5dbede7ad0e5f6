package balance

// Examples are sample equations covering simple, grouped and redox reactions.
var Examples = []string{
	"H2 + O2 -> H2O",
	"CH4 + O2 -> CO2 + H2O",
	"Fe + O2 -> Fe2O3",
	"NaOH + H2SO4 = Na2SO4 + H2O",
	"KMnO4 + HCl = KCl + MnCl2 + Cl2 + H2O",
	"Al + HCl = AlCl3 + H2",
	"C6H12O6 + O2 = CO2 + H2O",
	"NH3 + O2 = NO + H2O",
	"Cu + HNO3 = Cu(NO3)2 + NO + H2O",
	"K4Fe(CN)6 + KMnO4 + H2SO4 = Fe2(SO4)3 + MnSO4 + KNO3 + CO2 + K2SO4 + H2O",
}
