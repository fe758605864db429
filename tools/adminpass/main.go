package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Prints the bcrypt hash to paste into Admin.PasswordHash of chatbot.yaml.
// Usage:
//
//	go run ./tools/adminpass -p 'a-long-password'
//	echo 'a-long-password' | go run ./tools/adminpass
//	go run ./tools/adminpass -p 'a-long-password' -check '$2a$10$...'
func main() {
	password := flag.String("p", "", "password to hash; read from stdin when empty")
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost")
	check := flag.String("check", "", "verify the password against this hash instead of hashing it")
	flag.Parse()

	pw := *password
	if pw == "" {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			log.Fatalf("read password: %v", err)
		}
		pw = strings.TrimRight(line, "\r\n")
	}
	if pw == "" {
		log.Fatal("password is empty")
	}

	if *check != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(*check), []byte(pw)); err != nil {
			log.Fatalf("password does not match: %v", err)
		}
		fmt.Println("ok")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pw), *cost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}
	fmt.Println(string(hash))
}
