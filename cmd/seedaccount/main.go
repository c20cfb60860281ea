// Command seedaccount creates an account in the users file from the
// terminal, for bootstrapping a site without going through the HTTP API.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/autotransformers/site/internal/server/sessions"
	"github.com/autotransformers/site/internal/server/users"
)

func main() {
	usersFile := flag.String("f", "users.json", "path of the JSON users file")
	flag.Parse()

	if err := run(*usersFile); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func run(usersFile string) error {
	reader := bufio.NewReader(os.Stdin)

	firstName, err := getSimpleText(reader, "Enter first name", os.Stdout)
	if err != nil {
		return err
	}
	lastName, err := getSimpleText(reader, "Enter last name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	phone, err := getSimpleText(reader, "Enter phone", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	repo := users.NewFileRepository(usersFile)
	service, err := users.NewService(repo, sessions.NewRegistry(time.Hour))
	if err != nil {
		return err
	}

	user, err := service.Register(context.Background(), users.RegisterInput{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Phone:     phone,
		Password:  password,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Created account %s (%s)\n", user.Email, user.ID)
	return nil
}
