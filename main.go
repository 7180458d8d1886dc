// Package main mgit Git operations API
//
//	@title			mgit API
//	@version		1.0.0
//	@description	mgit runs Git operations on local repositories and publishes them to hosting providers
//
//	@contact.name	API Support
//
//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html
//
//	@host			localhost:3000
//	@BasePath		/api/v1
package main

import "github.com/mgit-app/mgit/internal"

//go:generate swag init --parseDependency --outputTypes go -g ./main.go -o ./internal/server/docs

func main() {
	internal.Run()
}
