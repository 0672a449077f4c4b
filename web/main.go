package main

import (
	"flag"

	"github.com/golang/glog"

	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/web/server"
)

func main() {
	port := flag.Int("port", 8080, "Port to serve on")
	workers := flag.Int("workers", 0, "Rows rendered concurrently per request (0 uses one per CPU)")
	flag.Parse()
	defer glog.Flush()

	if err := renderer.RegisterViews(); err != nil {
		glog.Warningf("Could not register render metrics: %v", err)
	}

	webServer := server.NewServer(*port, *workers)

	glog.Infof("Whitted Raytracer Web Server")
	glog.Infof("Visit http://localhost:%d/api/scenes to list scenes", *port)

	if err := webServer.Start(); err != nil {
		glog.Exitf("Error starting server: %v", err)
	}
}
