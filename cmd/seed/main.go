package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/jobtrackr/jobtrackr/internal/config"
	"github.com/jobtrackr/jobtrackr/internal/models"
	"github.com/jobtrackr/jobtrackr/internal/repositories"
)

// Seeds the configured database with a handful of sample
// applications for local development.
func main() {
	_ = godotenv.Load()

	cfg := config.Get()

	dbContext, err := repositories.NewDbContext(cfg.DB.Driver, cfg.DB.DSN)
	if err != nil {
		log.Fatalf("can't create db context: %v", err)
	}
	defer dbContext.Close()

	if err = dbContext.Migrate(); err != nil {
		log.Fatalf("can't migrate db context: %v", err)
	}

	jobs := repositories.NewJobsRepository(dbContext.DB)

	ctx := context.Background()
	for i := range sampleJobs {
		if err := jobs.Create(ctx, &sampleJobs[i]); err != nil {
			log.Fatalf("can't seed job %q: %v", sampleJobs[i].Position, err)
		}
	}

	log.Infof("seeded %d jobs", len(sampleJobs))
}

func date(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		log.Fatalf("bad seed date %q: %v", value, err)
	}
	return t
}

func datePtr(value string) *time.Time {
	t := date(value)
	return &t
}

var sampleJobs = []models.Job{
	{
		Position:     "Senior Full Stack Developer",
		Company:      "TechCorp Inc.",
		Salary:       models.Salary{Amount: 120000, Currency: "USD"},
		Link:         "https://techcorp.com/careers/senior-developer",
		Status:       models.StatusInterviewing,
		Location:     "San Francisco, CA",
		Type:         models.TypeFullTime,
		Source:       "LinkedIn",
		DateApplied:  date("2024-01-15"),
		Deadline:     datePtr("2024-02-15"),
		FollowUpOn:   datePtr("2024-01-25"),
		Priority:     models.PriorityHigh,
		Tags:         []string{"React", "Node.js", "MongoDB", "AWS"},
		ContactName:  "Sarah Johnson",
		ContactEmail: "sarah.johnson@techcorp.com",
		NextAction:   "Technical interview scheduled for next week",
		Notes:        "Great company culture, remote work available",
		Interviews: []models.Interview{
			{Type: models.InterviewPhone, Date: date("2024-01-20"), Notes: "Initial phone screening went well"},
			{Type: models.InterviewTech, Date: date("2024-01-30"), Notes: "Technical interview scheduled"},
		},
		Attachments: &models.Attachments{
			ResumeURL:      "/uploads/resume_techcorp.pdf",
			CoverLetterURL: "/uploads/cover_techcorp.pdf",
		},
	},
	{
		Position:     "Frontend Developer",
		Company:      "StartupXYZ",
		Salary:       models.Salary{Amount: 85000, Currency: "USD"},
		Link:         "https://startupxyz.com/jobs/frontend-dev",
		Status:       models.StatusApplied,
		Location:     "Remote",
		Type:         models.TypeFullTime,
		Source:       "Company Website",
		DateApplied:  date("2024-01-10"),
		Priority:     models.PriorityMedium,
		Tags:         []string{"React", "TypeScript", "CSS"},
		ContactName:  "Mike Chen",
		ContactEmail: "mike@startupxyz.com",
		NextAction:   "Waiting for response",
		Notes:        "Small startup, equity options available",
	},
	{
		Position:     "Software Engineer Intern",
		Company:      "BigTech Corp",
		Salary:       models.Salary{Amount: 6000, Currency: "USD"},
		Link:         "https://bigtech.com/internships",
		Status:       models.StatusOffered,
		Location:     "Seattle, WA",
		Type:         models.TypeIntern,
		Source:       "University Career Fair",
		DateApplied:  date("2024-01-05"),
		Priority:     models.PriorityHigh,
		Tags:         []string{"Python", "Machine Learning", "Internship"},
		ContactName:  "Dr. Emily Rodriguez",
		ContactEmail: "emily.rodriguez@bigtech.com",
		NextAction:   "Review offer details",
		Notes:        "Summer internship program",
		Offer: &models.Offer{
			Base:      "6000",
			Currency:  "USD",
			Bonus:     "1000",
			Equity:    "Stock options",
			Benefits:  "Health insurance, housing stipend",
			StartDate: datePtr("2024-06-01"),
		},
	},
	{
		Position:     "DevOps Engineer",
		Company:      "CloudSolutions Ltd",
		Salary:       models.Salary{Amount: 110000, Currency: "USD"},
		Link:         "https://cloudsolutions.com/careers/devops",
		Status:       models.StatusRejected,
		Location:     "Austin, TX",
		Type:         models.TypeFullTime,
		Source:       "Referral",
		DateApplied:  date("2024-01-08"),
		Priority:     models.PriorityMedium,
		Tags:         []string{"Docker", "Kubernetes", "AWS", "CI/CD"},
		ContactName:  "Alex Thompson",
		ContactEmail: "alex.thompson@cloudsolutions.com",
		NextAction:   "Apply to similar positions",
		Notes:        "Position filled internally",
	},
	{
		Position:     "Backend Developer",
		Company:      "FinTech Startup",
		Salary:       models.Salary{Amount: 95000, Currency: "USD"},
		Link:         "https://fintech-startup.com/jobs/backend",
		Status:       models.StatusApplied,
		Location:     "New York, NY",
		Type:         models.TypeContract,
		Source:       "Indeed",
		DateApplied:  date("2024-01-12"),
		Deadline:     datePtr("2024-02-01"),
		Priority:     models.PriorityLow,
		Tags:         []string{"Node.js", "PostgreSQL", "Microservices"},
		ContactName:  "Jennifer Lee",
		ContactEmail: "jennifer@fintech-startup.com",
		NextAction:   "Follow up next week",
		Notes:        "6-month contract with possibility of extension",
	},
	{
		Position:     "Product Manager",
		Company:      "Innovation Labs",
		Salary:       models.Salary{Amount: 130000, Currency: "USD"},
		Link:         "https://innovationlabs.com/careers/pm",
		Status:       models.StatusInterviewing,
		Location:     "Boston, MA",
		Type:         models.TypeFullTime,
		Source:       "AngelList",
		DateApplied:  date("2024-01-18"),
		Priority:     models.PriorityHigh,
		Tags:         []string{"Product Management", "Agile", "User Research"},
		ContactName:  "David Park",
		ContactEmail: "david.park@innovationlabs.com",
		NextAction:   "Prepare for case study presentation",
		Notes:        "Series A startup, exciting product roadmap",
		Interviews: []models.Interview{
			{Type: models.InterviewHR, Date: date("2024-01-22"), Notes: "HR screening completed"},
		},
	},
}
