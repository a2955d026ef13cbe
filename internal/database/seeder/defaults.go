package seeder

import "golang.org/x/crypto/bcrypt"

const (
	DemoUsername = "demo"
	DemoPassword = "applytrack-demo"
)

var demoSkills = []string{"Go", "PostgreSQL", "Redis", "Docker", "Kubernetes", "REST APIs", "Testing"}

var demoJobTags = []string{"backend", "remote", "full-time", "contract"}

// Defaults seeds a demo account with starter lists and one worked example.
func Defaults() []Seeder {
	return []Seeder{
		DemoUserSeeder{Username: DemoUsername, Password: DemoPassword, Cost: bcrypt.DefaultCost},
		ListsSeeder{Username: DemoUsername, Skills: demoSkills, JobTags: demoJobTags},
		SamplesSeeder{Username: DemoUsername},
	}
}
