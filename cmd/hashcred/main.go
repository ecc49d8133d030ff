// Command hashcred prints the bcrypt hash of a credential so it can be
// placed in ADMIN_CREDENTIAL_HASH.
package main

import (
	"fmt"
	"os"

	"github.com/avnoor-ludhar/banking/pkg/service/auth"
	log "github.com/charmbracelet/log"
	"golang.org/x/term"
)

func main() {
	var credential string
	if len(os.Args) > 1 {
		credential = os.Args[1]
	} else {
		fmt.Fprint(os.Stderr, "Credential: ")
		secret, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			log.Fatal(err)
		}
		credential = string(secret)
	}

	hash, err := auth.HashCredential(credential)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(hash)
}
