package main

import (
	"context"
	"fmt"
	"time"

	"github.com/steliasaustin/outreach/core"
	"github.com/steliasaustin/outreach/core/announcement"
	"github.com/steliasaustin/outreach/core/event"
	"github.com/steliasaustin/outreach/core/idea"
	"github.com/steliasaustin/outreach/core/ministry"
	"github.com/steliasaustin/outreach/core/user"
	"github.com/steliasaustin/outreach/core/volunteer"
	"github.com/steliasaustin/outreach/storage/database"
)

// seed migrates the schema and loads a small demo dataset: an admin account,
// the three core ministries, upcoming events with roles, volunteers with
// RSVPs, two ideas and a pinned announcement.
func (cli *commandLine) seed() error {
	if err := database.Migrate(cli.db); err != nil {
		return err
	}

	ctx := context.Background()
	validate, _ := core.NewValidator()

	userRepo := database.NewUserRepository(cli.db)
	ministryRepo := database.NewMinistryRepository(cli.db)
	eventRepo := database.NewEventRepository(cli.db)
	volunteerRepo := database.NewVolunteerRepository(cli.db)
	ideaRepo := database.NewIdeaRepository(cli.db)
	announcementRepo := database.NewAnnouncementRepository(cli.db)

	// admin account
	admin, err := userRepo.GetUserByEmail(ctx, "admin@steliasaustin.org")
	if err != nil {
		usrSvc := user.NewService(userRepo, validate, cli.logger)
		admin, err = usrSvc.Create(ctx, user.NewUser{
			Name:     "Admin",
			Email:    "admin@steliasaustin.org",
			Password: "ChangeMe!Now",
		}, user.RoleAdmin)
		if err != nil {
			return err
		}
	}
	fmt.Println("created admin user:", admin.Email)

	// ministries
	outreach, err := ministryRepo.CreateMinistry(ctx, ministry.Ministry{
		Name:        "Community Outreach",
		Description: "Serving our neighbors in Austin through direct community engagement.",
		Color:       "#4263eb",
	})
	if err != nil {
		return err
	}
	youth, err := ministryRepo.CreateMinistry(ctx, ministry.Ministry{
		Name:        "Youth Ministry",
		Description: "Empowering young people to serve and grow in faith.",
		Color:       "#f59f00",
	})
	if err != nil {
		return err
	}
	care, err := ministryRepo.CreateMinistry(ctx, ministry.Ministry{
		Name:        "Care Ministry",
		Description: "Providing support and care to those in need.",
		Color:       "#e64980",
	})
	if err != nil {
		return err
	}
	fmt.Println("created ministries")

	// events
	now := time.Now()
	nextWeek := time.Date(now.Year(), now.Month(), now.Day()+7, 9, 0, 0, 0, time.Local)
	nextWeekEnd := nextWeek.Add(4 * time.Hour)
	twoWeeks := time.Date(now.Year(), now.Month(), now.Day()+14, 10, 0, 0, 0, time.Local)
	threeWeeks := time.Date(now.Year(), now.Month(), now.Day()+21, 8, 0, 0, 0, time.Local)

	maxGarden, maxTutoring, maxFoodDrive := 25, 15, 30
	address := "408 East 11th Street, Austin, TX 78701"

	garden, err := eventRepo.CreateEvent(ctx, event.Event{
		Title: "Community Garden Cleanup",
		Description: "Join us for our monthly community garden cleanup! We'll be weeding, planting new vegetables, " +
			"and preparing garden beds for the spring season. All ages are welcome. Bring your gardening gloves " +
			"and a water bottle.\n\nLunch will be provided for all volunteers.",
		Start:         nextWeek,
		End:           &nextWeekEnd,
		Location:      "St. Elias Community Garden",
		Address:       address,
		Status:        event.StatusPublished,
		MaxVolunteers: &maxGarden,
		WhatToBring:   []string{"Gardening gloves", "Water bottle", "Sunscreen", "Hat"},
		OrganizerID:   admin.ID,
		MinistryID:    outreach.ID,
		Roles: []event.Role{
			{Name: "Team Lead", SpotsNeeded: 2},
			{Name: "Garden Crew", SpotsNeeded: 15},
			{Name: "Lunch Setup", SpotsNeeded: 4},
		},
	})
	if err != nil {
		return err
	}

	tutoring, err := eventRepo.CreateEvent(ctx, event.Event{
		Title: "Youth Tutoring Program",
		Description: "Help local students succeed! Our weekly tutoring program pairs church volunteers with students " +
			"from nearby schools who need extra support in math, reading, and science.\n\nNo teaching experience " +
			"required, just a willingness to help!",
		Start:         twoWeeks,
		Location:      "St. Elias Parish Hall",
		Address:       address,
		Status:        event.StatusPublished,
		MaxVolunteers: &maxTutoring,
		WhatToBring:   []string{"Laptop (optional)", "Pencils and paper"},
		OrganizerID:   admin.ID,
		MinistryID:    youth.ID,
	})
	if err != nil {
		return err
	}

	foodDrive, err := eventRepo.CreateEvent(ctx, event.Event{
		Title: "Food Drive Collection Day",
		Description: "We are collecting non-perishable food items for the Austin Food Bank. Volunteers are needed to " +
			"sort donations, pack boxes, and load the delivery truck.\n\nEvery canned good, every box of cereal, " +
			"every bag of rice makes a difference for families in our community.",
		Start:         threeWeeks,
		Location:      "St. Elias Church Parking Lot",
		Address:       address,
		Status:        event.StatusPublished,
		MaxVolunteers: &maxFoodDrive,
		WhatToBring:   []string{"Comfortable shoes", "Work gloves"},
		OrganizerID:   admin.ID,
		MinistryID:    care.ID,
	})
	if err != nil {
		return err
	}
	fmt.Println("created sample events")

	// volunteers and RSVPs
	maria, err := volunteerRepo.CreateVolunteer(ctx, volunteer.Volunteer{
		Name: "Maria Garcia", Email: "maria@example.com", Phone: "(512) 555-0101",
	})
	if err != nil {
		return err
	}
	james, err := volunteerRepo.CreateVolunteer(ctx, volunteer.Volunteer{
		Name: "James Wilson", Email: "james@example.com", Phone: "(512) 555-0102",
	})
	if err != nil {
		return err
	}
	sarah, err := volunteerRepo.CreateVolunteer(ctx, volunteer.Volunteer{
		Name: "Sarah Chen", Email: "sarah@example.com",
	})
	if err != nil {
		return err
	}

	rsvps := []volunteer.RSVP{
		{VolunteerID: maria.ID, EventID: garden.ID, Status: volunteer.StatusConfirmed},
		{VolunteerID: james.ID, EventID: garden.ID, Status: volunteer.StatusConfirmed},
		{VolunteerID: sarah.ID, EventID: tutoring.ID, Status: volunteer.StatusConfirmed},
		{VolunteerID: maria.ID, EventID: foodDrive.ID, Status: volunteer.StatusConfirmed},
	}
	for _, rsvp := range rsvps {
		if _, err = volunteerRepo.CreateRSVP(ctx, rsvp); err != nil {
			return err
		}
	}
	fmt.Println("created sample volunteers and RSVPs")

	// ideas
	_, err = ideaRepo.CreateIdea(ctx, idea.Idea{
		Title: "Monthly Neighborhood Walk & Clean",
		Description: "We could organize a monthly walk through nearby neighborhoods to pick up litter and beautify " +
			"the area. It's a great way to meet neighbors, get exercise, and keep Austin clean!",
		SubmitterName:  "Maria Garcia",
		SubmitterEmail: "maria@example.com",
		Status:         idea.StatusApproved,
	})
	if err != nil {
		return err
	}
	_, err = ideaRepo.CreateIdea(ctx, idea.Idea{
		Title: "Holiday Care Packages for Elderly",
		Description: "During the holiday season, we could put together care packages for elderly community members " +
			"who live alone, including homemade cookies, warm socks, and handwritten cards from our youth group.",
		SubmitterName:  "James Wilson",
		SubmitterEmail: "james@example.com",
		Status:         idea.StatusSubmitted,
	})
	if err != nil {
		return err
	}
	fmt.Println("created sample ideas")

	// announcement
	_, err = announcementRepo.CreateAnnouncement(ctx, announcement.Announcement{
		Title: "Spring Service Season",
		Body: "Our spring community service season kicks off next week! Check out our upcoming events and sign up " +
			"to volunteer.",
		IsPinned:    true,
		AuthorID:    admin.ID,
		PublishedAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	fmt.Println("created sample announcement")
	fmt.Println("seed complete!")
	return nil
}
