package participant

// Repository abstracts participant persistence so the orchestrator can be
// tested with mocks.
type Repository interface {
	Load() ([]*Participant, int, error)
	Append(p *Participant) error
	SaveAll(participants []*Participant) error
	Path() string
}

// CSVRepository delegates to the package-level CSV functions for one file.
type CSVRepository struct {
	path string
}

func NewCSVRepository(path string) CSVRepository {
	return CSVRepository{path: path}
}

func (r CSVRepository) Load() ([]*Participant, int, error) {
	return Load(r.path)
}

func (r CSVRepository) Append(p *Participant) error {
	return Append(r.path, p)
}

func (r CSVRepository) SaveAll(participants []*Participant) error {
	return SaveAll(r.path, participants)
}

func (r CSVRepository) Path() string {
	return r.path
}
