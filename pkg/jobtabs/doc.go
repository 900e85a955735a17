// Package jobtabs provides an embeddable jobs tab view: it fetches a job list
// once from a remote endpoint and serves it as a tabbed HTML page, a JSON API
// and a Server-Sent Events stream of state changes.
//
// # Basic Usage
//
// Create an instance programmatically:
//
//	cfg := &jobtabs.Config{
//		Server: jobtabs.ServerConfig{
//			Port:         8080,
//			ReadTimeout:  30 * time.Second,
//			WriteTimeout: 30 * time.Second,
//		},
//		Source: jobtabs.SourceConfig{
//			Kind: "courseapi",
//		},
//		Logging: jobtabs.LoggingConfig{
//			Level:  "info",
//			Format: "json",
//		},
//	}
//
//	jt, err := jobtabs.New(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer cancel()
//
//	if err := jt.Start(ctx); err != nil {
//		log.Fatal(err)
//	}
//
// # Using with Existing HTTP Server
//
// Mount the widget yourself and serve the handler under a prefix:
//
//	jt, err := jobtabs.New(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := jt.Mount(ctx); err != nil {
//		log.Fatal(err)
//	}
//	defer jt.Unmount()
//
//	http.Handle("/jobs/", http.StripPrefix("/jobs", jt.Handler()))
//	http.ListenAndServe(":8080", nil)
//
// # Environment-based Configuration
//
// With an empty path, configuration comes from PORT, JOBS_SOURCE, JOBS_URL,
// JOBS_FILE, FETCH_TIMEOUT, LOG_LEVEL and LOG_FORMAT:
//
//	jt, err := jobtabs.NewFromEnv("")
//
// # Direct Widget Access
//
// The widget can be driven without HTTP:
//
//	w := jt.Widget()
//	<-w.Ready()
//	w.Select(1)
//	state := w.Snapshot()
package jobtabs
