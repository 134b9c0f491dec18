package main

import (
	"flag"
	"github.com/gin-gonic/gin"
	"github.com/treeforest/basex"
	"github.com/treeforest/basex/config"
	"github.com/treeforest/basex/dao"
	"github.com/treeforest/basex/internal/client"
	"github.com/treeforest/basex/internal/server"
	"github.com/treeforest/basex/internal/service"
	"github.com/treeforest/basex/pkg/graceful"
	log "github.com/treeforest/logger"
	"os"
	"sort"
	"time"
)

var confPath = flag.String("conf", "config.yaml", "配置文件路径")

func main() {
	flag.Parse()

	conf, err := config.Load(*confPath)
	if err != nil {
		log.Fatal("load config failed: ", err)
	}
	if conf.LogLevel == "debug" {
		log.SetLevel(log.DEBUG)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	registerAlphabets(conf.Alphabets)

	args := flag.Args()
	if len(args) > 0 && args[0] == "serve" {
		serve(conf, args[1:])
		return
	}

	if err = run(conf, args); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

// run executes a codec command locally, or against base_url when it is set.
func run(conf *config.Config, args []string) error {
	var codec client.Codec
	if conf.BaseUrl != "" {
		log.Debug("remote:", conf.BaseUrl)
		codec = client.NewHttpClient(conf.BaseUrl)
	} else {
		store, err := dao.New(conf.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()
		codec = service.New(store)
	}

	return client.NewCommand(codec, conf.Alphabet, os.Stdin, os.Stdout).Run(args)
}

// registerAlphabets adds the configured alphabets to the process registry.
func registerAlphabets(alphabets map[string]string) {
	names := make([]string, 0, len(alphabets))
	for name := range alphabets {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, err := basex.Register(name, alphabets[name]); err != nil {
			log.Fatalf("register alphabet [%s] error [%v]", name, err)
		}
		log.Debugf("registered alphabet %s", name)
	}
}

func serve(conf *config.Config, args []string) {
	cmdServe := flag.NewFlagSet("serve", flag.ExitOnError)
	port := cmdServe.Int("port", conf.HttpServerPort, "http 监听端口")
	_ = cmdServe.Parse(args)

	store, err := dao.New(conf.DBPath)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	srv := server.NewHttpServer(*port, service.New(store))
	go func() {
		if err := srv.Run(); err != nil {
			log.Fatal(err)
		}
	}()

	if err = graceful.Stop(5*time.Second, srv.Shutdown); err != nil {
		log.Warn("shutdown http server failed: ", err)
	}
}
