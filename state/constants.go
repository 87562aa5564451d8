package state

const (
	DefaultNodes = 50
	DefaultSeed  = 1

	DefaultWidth  = 1000
	DefaultLength = 1000
	DefaultHeight = 0

	DefaultRangeMin      = 300
	DefaultRangeMax      = 350
	DefaultLinkBudgetMin = 4
	DefaultLinkBudgetMax = 8

	// hubs share one range and budget, drawn from these intervals
	DefaultHubRangeMin      = 200
	DefaultHubRangeMax      = 250
	DefaultHubLinkBudgetMin = 200
	DefaultHubLinkBudgetMax = 250
	DefaultCoverage         = 95.0

	// star nodes may only hold their hub link
	StarNodeLinkBudget = 1

	DefaultTermination = 1000
	DefaultProtocol    = "raft"
	DefaultElectionMin = 60
	DefaultElectionMax = 300
	DefaultHeartbeat   = 30

	DefaultConfigPath = "topogen.yaml"
	DefaultOutputPath = "topology.json"
)

var (
	// KMeansRestarts is the number of seeded k-means runs per hub count, the lowest inertia wins
	KMeansRestarts = 10
	// KMeansMaxIterations bounds Lloyd refinement for a single run
	KMeansMaxIterations = 300
	KMeansTolerance     = 1e-4
)
