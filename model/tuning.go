package model

// TuningNote names the open-string pitch of one string.
type TuningNote struct {
	Name   string `yaml:"name" json:"name"`
	Octave int    `yaml:"octave" json:"octave"`
}

// Tuning lists open strings lowest first. Its length defines the
// string count.
type Tuning []TuningNote

// StandardTuning is E A D G B E.
var StandardTuning = Tuning{
	{"E", 2},
	{"A", 2},
	{"D", 3},
	{"G", 3},
	{"B", 3},
	{"E", 4},
}

// OneStepDownTuning is D G C F A D.
var OneStepDownTuning = Tuning{
	{"D", 2},
	{"G", 2},
	{"C", 3},
	{"F", 3},
	{"A", 3},
	{"D", 4},
}
