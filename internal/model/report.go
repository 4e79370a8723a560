package model

// Program is a loadable collection of code units plus the inputs to run the
// entry function with.
type Program struct {
	Name   string
	Path   Path
	Hash   string
	Entry  string
	Source string
	Inputs [][]any
}

// ExecutionResult is the outcome of one traced run.
type ExecutionResult struct {
	Value     any
	Exception error
	Trace     ExecutionTrace
	TimedOut  bool
}

// PredicateReport summarises one predicate in a report.
type PredicateReport struct {
	ID            int     `yaml:"id"`
	Line          int     `yaml:"line"`
	Kind          string  `yaml:"kind"`
	Executions    int     `yaml:"executions"`
	TrueDistance  float64 `yaml:"true_distance"`
	FalseDistance float64 `yaml:"false_distance"`
}

// Report represents the result of running one input against a program.
type Report struct {
	Program      string            `yaml:"program"`
	Entry        string            `yaml:"entry"`
	Input        []string          `yaml:"input"`
	Output       string            `yaml:"output,omitempty"`
	Exception    string            `yaml:"exception,omitempty"`
	TimedOut     bool              `yaml:"timed_out,omitempty"`
	CodeObjects  []int             `yaml:"code_objects"`
	CoveredLines []int             `yaml:"covered_lines"`
	Predicates   []PredicateReport `yaml:"predicates"`
}

// Summary aggregates coverage across every input of a program.
type Summary struct {
	Program           string
	CodeObjects       int
	CoveredCodeObject int
	Predicates        int
	CoveredBranches   int
	Lines             int
	CoveredLines      int
	Constants         map[ValueType][]string
}
