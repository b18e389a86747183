package auth

import (
	"fmt"
	"strings"
)

// ShowAPIKeyGuide prints how to obtain and store an OpenSea API key
func ShowAPIKeyGuide() {
	fmt.Println(strings.Repeat("=", 72))
	fmt.Println("OPENSEA API KEY")
	fmt.Println(strings.Repeat("=", 72))
	fmt.Println()

	fmt.Println("The collection endpoint needs an API key sent as X-API-KEY.")
	fmt.Println()

	fmt.Println("STEP 1: Request a key")
	fmt.Println("   - Open https://docs.opensea.io/reference/api-keys")
	fmt.Println("   - Follow the instructions to request a key for your account")
	fmt.Println()

	fmt.Println("STEP 2: Store it")
	fmt.Println("   nftarchive auth set                  # prompts, input hidden")
	fmt.Println("   nftarchive auth set --profile work   # a second key")
	fmt.Println()

	fmt.Println("Alternatives:")
	fmt.Printf("   - export %s=<key>\n", APIKeyEnv)
	fmt.Println("   - opensea.api_key in .nftarchive.yaml")
	fmt.Println("   - --api-key on the command line")
	fmt.Println()

	fmt.Println("Stored keys live in the system keychain when available, otherwise")
	fmt.Println("in an encrypted file under the nftarchive config directory.")
	fmt.Println(strings.Repeat("=", 72))
}
