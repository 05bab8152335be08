package cmd

// Config carries everything the process reads from the environment. The
// wait durations are deployment-wide; tenants share one kitchen rhythm.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	CookWaitSeconds   int
	PackWaitSeconds   int
	PickupWaitSeconds int
}
