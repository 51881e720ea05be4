package main

import (
	"errors"
	"flag"
	"fmt"
	"syscall"

	"golang.org/x/term"

	"github.com/elimuhub/elimu/core/user"
	"github.com/elimuhub/elimu/storage/memdb"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	db     *memdb.DB
	usrSvc user.ServiceInterface
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  adduser -name NAME -email EMAIL [-role ROLE] - create an active user; the password is prompted next")
	fmt.Println("  roles                                        - list the role table")
	fmt.Println("  verify -email EMAIL                          - mark a user's email as verified")
	fmt.Println("  seed                                         - restore the demo dataset")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addUserCmd := flag.NewFlagSet("adduser", flag.ExitOnError)
	addUserName := addUserCmd.String("name", "", "The user's display name.")
	addUserEmail := addUserCmd.String("email", "", "The user's email. The password will be prompted next.")
	addUserRole := addUserCmd.String("role", string(user.RoleStudent), "The user's role.")

	verifyCmd := flag.NewFlagSet("verify", flag.ExitOnError)
	verifyEmail := verifyCmd.String("email", "", "The user's email.")

	switch args[1] {
	case "adduser":
		if err := addUserCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addUserName == "" || *addUserEmail == "" {
			addUserCmd.Usage()
			return errHelp
		}
		fmt.Print("Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Println()
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			addUserCmd.Usage()
			return errHelp
		}
		return cli.addUser(*addUserName, *addUserEmail, user.Role(*addUserRole), string(pwd))
	case "roles":
		cli.printRoles()
		return nil
	case "seed":
		if err := memdb.Seed(cli.db); err != nil {
			return err
		}
		fmt.Println("demo dataset restored")
		return nil
	case "verify":
		if err := verifyCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *verifyEmail == "" {
			verifyCmd.Usage()
			return errHelp
		}
		return cli.verify(*verifyEmail)
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) printRoles() {
	fmt.Println("Roles:")
	for _, role := range user.AllRoles {
		fmt.Printf("  %-20s %s\n", role, role.Capability())
	}
}
