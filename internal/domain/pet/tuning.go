package pet

const (
	DefaultEnergy = 50
	MinEnergy     = 0
	MaxEnergy     = 100

	XPPerLevel = 100

	CommitXP       = 10
	CommitEnergy   = 1
	TestPassXP     = 15
	TestFailXP     = 2
	NpmInstallXP   = 1
	FridayDeployXP = 20
	BugFixXP       = 12

	InactivityEnergyDrain = 5
	LowEnergyThreshold    = 20
)
