package domain

type Season string

const (
	SeasonUnknown Season = "unknown"
	SeasonAutumn  Season = "autumn"
	SeasonSpring  Season = "spring"
	SeasonBoth    Season = "both"
)

// SeasonOf maps the two independent offering flags onto a Season.
func SeasonOf(autumn, spring bool) Season {
	switch {
	case autumn && spring:
		return SeasonBoth
	case autumn:
		return SeasonAutumn
	case spring:
		return SeasonSpring
	default:
		return SeasonUnknown
	}
}

// ExpectedSeason returns the season a semester falls in: odd semesters are
// autumn, even ones spring.
func ExpectedSeason(semester int) Season {
	if semester%2 == 0 {
		return SeasonSpring
	}
	return SeasonAutumn
}

// Module codes used by the requirement structure.
const (
	ModuleRequired       = "PM"
	ModuleElective       = "VM"
	ModuleSpecialization = "SM"
	ModuleMajor          = "EM"
	ModuleFreeElective   = "VA"
	ModuleThesis         = "LM"
)

type IssueKind string

const (
	IssueSemester      IssueKind = "Semester"
	IssuePrerequisites IssueKind = "Eeldusained"
)
