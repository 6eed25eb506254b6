package app

import (
	"strings"

	"newsprep/internal/model"
	"newsprep/internal/storage"
)

// StudyService serves TNPSC preparation material: the stored resource
// catalog and the static syllabus outline.
type StudyService struct {
	store storage.Store
}

func NewStudyService(store storage.Store) *StudyService {
	return &StudyService{store: store}
}

func (s *StudyService) ListResources(category, subject, stage string) ([]model.StudyResource, error) {
	return s.store.ListStudyResources(storage.StudyResourceFilter{
		Category:  strings.TrimSpace(category),
		Subject:   strings.TrimSpace(subject),
		ExamStage: strings.ToLower(strings.TrimSpace(stage)),
	})
}

func (s *StudyService) AddResource(resource *model.StudyResource) error {
	if resource == nil || strings.TrimSpace(resource.Title) == "" {
		return ErrInvalidInput
	}
	return s.store.CreateStudyResource(resource)
}

type SyllabusSubject struct {
	Name  string   `json:"name"`
	Units []string `json:"units"`
}

type SyllabusStage struct {
	Stage       string            `json:"stage"`
	Description string            `json:"description"`
	Subjects    []SyllabusSubject `json:"subjects"`
}

// Syllabus returns the static TNPSC Group exam outline. The outline changes
// rarely, with notifications, so it ships with the binary instead of the
// database.
func (s *StudyService) Syllabus() []SyllabusStage {
	return []SyllabusStage{
		{
			Stage:       "prelims",
			Description: "Preliminary examination: single objective paper.",
			Subjects: []SyllabusSubject{
				{
					Name: "General Studies",
					Units: []string{
						"General Science",
						"Current Events",
						"Geography of India",
						"History and Culture of India",
						"Indian Polity",
						"Indian Economy",
						"Indian National Movement",
						"History, Culture, Heritage and Socio-Political Movements in Tamil Nadu",
						"Development Administration in Tamil Nadu",
					},
				},
				{
					Name: "Aptitude and Mental Ability",
					Units: []string{
						"Simplification",
						"Percentage",
						"Highest Common Factor and Lowest Common Multiple",
						"Ratio and Proportion",
						"Area and Volume",
						"Logical Reasoning",
						"Puzzles and Dice",
						"Visual Reasoning",
					},
				},
			},
		},
		{
			Stage:       "mains",
			Description: "Main written examination: descriptive papers.",
			Subjects: []SyllabusSubject{
				{
					Name: "Tamil Eligibility Test",
					Units: []string{
						"Comprehension",
						"Grammar",
						"Translation",
						"Essay Writing",
					},
				},
				{
					Name: "General Studies Paper I",
					Units: []string{
						"Modern History of India and Indian Culture",
						"General Aptitude and Mental Ability",
						"Role and Impact of Science and Technology",
					},
				},
				{
					Name: "General Studies Paper II",
					Units: []string{
						"Indian Polity and Emerging Political Trends",
						"Geography of India",
						"Tamil Society, its Culture and Heritage",
						"Administration of Union and States",
					},
				},
				{
					Name: "General Studies Paper III",
					Units: []string{
						"Indian Economy and Current Economic Trends",
						"Indian National Movement",
						"Socio-Economic Issues of India and Tamil Nadu",
					},
				},
			},
		},
	}
}
