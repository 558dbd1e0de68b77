package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/pryv/campaign-manager/internal/database"
	"github.com/pryv/campaign-manager/internal/model"
)

func main() {
	dbPath := flag.String("db", "campaigns.sqlite", "database file")
	user := flag.String("user", "", "username")
	passwd := flag.String("password", "", "password")
	flag.Parse()

	db, err := gorm.Open(sqlite.Open(*dbPath), &gorm.Config{})
	if err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}

	mm := database.New(db)

	if err := mm.Migrate(); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}

	if *user == "" {
		for _, u := range mm.UserQuery().Get() {
			fmt.Printf("%s\t%s\t%s\n", u.ID, u.Username, u.PryvUsername)
		}

		return
	}

	pass := *passwd
	if pass == "" {
		reader := bufio.NewReader(os.Stdin)
		fmt.Print("password: ")
		p1, _ := reader.ReadString('\n')
		fmt.Print("repeat password: ")
		p2, _ := reader.ReadString('\n')

		if p1 != p2 {
			fmt.Println("\npassword mismatch")
			return
		}

		pass = strings.TrimRight(p1, "\n")
	}

	if u := mm.UserQuery().Username(*user).One(); u != nil {
		if err := u.SetPassword(pass); err != nil {
			fmt.Println(err.Error())
			os.Exit(1)
		}

		if err := mm.Save(u); err != nil {
			os.Exit(1)
		}

		fmt.Printf("password updated for %s\n", *user)

		return
	}

	u := &model.User{Username: *user}
	if err := u.SetPassword(pass); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}

	if _, err := mm.CreateUser(u); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}

	fmt.Printf("user %s created\n", *user)
}
