package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/GauriLakshmi/Farm-Connect/internal/models"
	"github.com/GauriLakshmi/Farm-Connect/internal/store"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	addUserCmd := flag.NewFlagSet("add-user", flag.ExitOnError)
	addUsername := addUserCmd.String("username", "", "Username for the new user")
	addPassword := addUserCmd.String("password", "", "Password for the new user")
	addRole := addUserCmd.String("role", "customer", "Role: farmer, customer or admin")
	addName := addUserCmd.String("name", "", "Display name")
	addContact := addUserCmd.String("contact", "", "Contact number")

	setPassCmd := flag.NewFlagSet("set-password", flag.ExitOnError)
	setUsername := setPassCmd.String("username", "", "Username of the account")
	setPassword := setPassCmd.String("password", "", "New password")

	if len(os.Args) < 2 {
		fmt.Println("usage: cli <add-user|set-password> [flags]")
		os.Exit(1)
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./farmers.db"
	}
	db, err := store.NewStore(dbPath)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer db.Close()

	switch os.Args[1] {
	case "add-user":
		addUserCmd.Parse(os.Args[2:])
		if *addUsername == "" || *addPassword == "" || *addName == "" {
			log.Fatal("add-user: -username, -password and -name are required")
		}
		role := models.Role(*addRole)
		if !role.Valid() {
			log.Fatalf("add-user: invalid role %q", *addRole)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*addPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("hash password: %v", err)
		}
		user, err := db.CreateUser(*addUsername, string(hash), role, *addName, *addContact)
		if err != nil {
			log.Fatalf("create user: %v", err)
		}
		fmt.Printf("created %s user %q (id %d)\n", user.Role, user.Username, user.ID)

	case "set-password":
		setPassCmd.Parse(os.Args[2:])
		if *setUsername == "" || *setPassword == "" {
			log.Fatal("set-password: -username and -password are required")
		}
		user, err := db.GetUserByUsername(*setUsername)
		if err != nil {
			log.Fatalf("lookup user: %v", err)
		}
		if user == nil {
			log.Fatalf("no such user %q", *setUsername)
		}
		if err := db.UpdateUser(user.ID, user.Name, user.Username, user.ContactNumber, user.Role, *setPassword); err != nil {
			log.Fatalf("set password: %v", err)
		}
		fmt.Printf("password updated for %q\n", *setUsername)

	default:
		fmt.Printf("unknown command %q\n", os.Args[1])
		os.Exit(1)
	}
}
