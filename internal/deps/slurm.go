package deps

// SlurmRequirements lists the Slurm client commands needed to follow jobs.
func SlurmRequirements(squeue, scontrol string) []Requirement {
	return []Requirement{
		{
			Name:        "squeue",
			Command:     squeue,
			Description: "Reports job states and finds your latest job",
		},
		{
			Name:        "scontrol",
			Command:     scontrol,
			Description: "Reports job names and output file paths",
		},
	}
}
