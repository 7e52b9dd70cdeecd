package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"syscall"

	"golang.org/x/term"
	"gorm.io/gorm"

	"github.com/steliasaustin/outreach/core"
	"github.com/steliasaustin/outreach/core/user"
	"github.com/steliasaustin/outreach/storage/database"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	conf   *core.Config
	db     *gorm.DB
	logger core.Logger
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate                            - bring the database schema up to date")
	fmt.Println("  createadmin -name NAME -email EMAIL - create an admin account (password prompted)")
	fmt.Println("  seed                               - migrate and load sample data")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	createAdminCmd := flag.NewFlagSet("createadmin", flag.ExitOnError)
	createAdminName := createAdminCmd.String("name", "", "The admin's full name.")
	createAdminEmail := createAdminCmd.String("email", "", "The admin's email. The password will be prompted next.")

	switch args[1] {
	case "migrate":
		return database.Migrate(cli.db)
	case "createadmin":
		if err := createAdminCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *createAdminName == "" || *createAdminEmail == "" {
			createAdminCmd.Usage()
			return errHelp
		}
		fmt.Print("Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Println()
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			createAdminCmd.Usage()
			return errHelp
		}
		return cli.createAdmin(*createAdminName, *createAdminEmail, string(pwd))
	case "seed":
		return cli.seed()
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) createAdmin(name, email, pwd string) error {
	if err := database.Migrate(cli.db); err != nil {
		return err
	}

	validate, _ := core.NewValidator()
	svc := user.NewService(database.NewUserRepository(cli.db), validate, cli.logger)

	usr, err := svc.Create(context.Background(), user.NewUser{
		Name:     name,
		Email:    email,
		Password: pwd,
	}, user.RoleAdmin)
	if err != nil {
		return err
	}
	fmt.Printf("admin account created: %s <%s>\n", usr.Name, usr.Email)
	return nil
}
