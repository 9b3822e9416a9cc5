package seeders

import (
	"classtrack_go/database"
	"classtrack_go/models"
	"classtrack_go/utils"
	"log"
	"strings"
)

// SeedAll runs the bootstrap seed step. Every seeder is idempotent (count
// check first), so running it on each startup is safe.
func SeedAll() {
	log.Println("Starting database seeding...")

	SeedRoles()
	SeedDefaultAdmin()
	SeedBatches()
	SeedSubjects()

	log.Println("Database seeding completed successfully!")
}

// SeedRoles seeds the roles table
func SeedRoles() {
	var count int64
	database.DB.Model(&models.Role{}).Count(&count)
	if count > 0 {
		log.Println("Roles already seeded, skipping...")
		return
	}

	roles := []models.Role{
		{Name: models.RoleSuperAdmin},
		{Name: models.RoleStaff},
	}

	for _, role := range roles {
		if err := database.DB.Create(&role).Error; err != nil {
			log.Printf("Error seeding role %s: %v", role.Name, err)
		}
	}

	log.Println("Roles seeded successfully")
}

// SeedDefaultAdmin creates the default admin account on first startup. The
// plaintext credentials are logged exactly once so the operator can log in
// and change them.
func SeedDefaultAdmin() {
	var count int64
	database.DB.Model(&models.Admin{}).Where("username = ?", "admin").Count(&count)
	if count > 0 {
		log.Println("Default admin already exists, skipping...")
		return
	}

	var superAdmin models.Role
	if err := database.DB.Where("name = ?", models.RoleSuperAdmin).First(&superAdmin).Error; err != nil {
		log.Printf("Error seeding default admin: %s role not found: %v", models.RoleSuperAdmin, err)
		return
	}

	hashedPassword, err := utils.HashPassword("admin123")
	if err != nil {
		log.Printf("Error hashing default admin password: %v", err)
		return
	}

	admin := models.Admin{
		Username: "admin",
		Password: hashedPassword,
		RoleID:   superAdmin.ID,
	}

	if err := database.DB.Create(&admin).Error; err != nil {
		log.Printf("Error seeding default admin: %v", err)
		return
	}

	log.Println(strings.Repeat("=", 50))
	log.Println("DEFAULT ADMIN USER CREATED SUCCESSFULLY!")
	log.Println("Username: admin")
	log.Println("Password: admin123")
	log.Println("PLEASE CHANGE THE PASSWORD AFTER FIRST LOGIN!")
	log.Println(strings.Repeat("=", 50))
}

// SeedBatches seeds the batches table
func SeedBatches() {
	var count int64
	database.DB.Model(&models.Batch{}).Count(&count)
	if count > 0 {
		log.Println("Batches already seeded, skipping...")
		return
	}

	for _, year := range []int{2024, 2025} {
		batch := models.Batch{BatchYear: year}
		if err := database.DB.Create(&batch).Error; err != nil {
			log.Printf("Error seeding batch %d: %v", year, err)
		}
	}

	log.Println("Batches seeded successfully")
}

// SeedSubjects seeds the subjects table
func SeedSubjects() {
	var count int64
	database.DB.Model(&models.Subject{}).Count(&count)
	if count > 0 {
		log.Println("Subjects already seeded, skipping...")
		return
	}

	for _, name := range []string{"Mathematics", "Physics", "Chemistry", "English"} {
		subject := models.Subject{Name: name}
		if err := database.DB.Create(&subject).Error; err != nil {
			log.Printf("Error seeding subject %s: %v", name, err)
		}
	}

	log.Println("Subjects seeded successfully")
}
