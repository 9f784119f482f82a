package ui

// ColorReset returns the reset code of the current theme.
func ColorReset() string { return GetCurrentTheme().Reset }

// ColorRed returns the error color of the current theme.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorGreen returns the success color of the current theme.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorYellow returns the warning color of the current theme.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorBlue returns the primary color of the current theme.
func ColorBlue() string { return GetCurrentTheme().Primary }

// ColorCyan returns the secondary color of the current theme.
func ColorCyan() string { return GetCurrentTheme().Secondary }

// ColorBold returns the bold code of the current theme.
func ColorBold() string { return GetCurrentTheme().Bold }

// ThemeColors adapts the current theme to the Yellow/Red/Reset color
// provider used by the error handler.
type ThemeColors struct{}

func (ThemeColors) Yellow() string { return ColorYellow() }
func (ThemeColors) Red() string    { return ColorRed() }
func (ThemeColors) Reset() string  { return ColorReset() }
