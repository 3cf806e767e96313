package finance

// CHF is a helper for test to create Swiss franc money from minor units.
func CHF(v int64) Money { return M(v, "CHF") }

// EUR is a helper for test to create euro money from minor units.
func EUR(v int64) Money { return M(v, "EUR") }

// JPY is a helper for test to create yen money (no minor unit).
func JPY(v int64) Money { return M(v, "JPY") }
