package product

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(f Filter) ([]Product, int) {
	return s.repo.List(f)
}

func (s *Service) GetByID(id int) (Product, error) {
	return s.repo.GetByID(id)
}

func (s *Service) GetBySlug(slug string) (Product, error) {
	return s.repo.GetBySlug(slug)
}

func (s *Service) Create(p Product) (Product, error) {
	return s.repo.Create(p)
}

func (s *Service) Update(id int, p Product) (Product, error) {
	return s.repo.Update(id, p)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}
