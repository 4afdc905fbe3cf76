package config

const (
	defaultSqueue          = "squeue"
	defaultScontrol        = "scontrol"
	defaultTickIntervalMs  = 500
	defaultStateQueryEvery = 4
	defaultBackseekBytes   = 512
	defaultFinishGraceMs   = 50
	defaultColor           = ColorAuto
	defaultLogFormat       = "console"
	defaultLogLevel        = "warn"
)

// Color modes accepted by follow.color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Slurm: Slurm{
			Squeue:    defaultSqueue,
			Scontrol:  defaultScontrol,
			AllStates: true,
		},
		Follow: Follow{
			TickIntervalMs:  defaultTickIntervalMs,
			StateQueryEvery: defaultStateQueryEvery,
			BackseekBytes:   defaultBackseekBytes,
			FinishGraceMs:   defaultFinishGraceMs,
			Spinner:         true,
			Color:           defaultColor,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
