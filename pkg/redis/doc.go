// Package redis connects to Redis with retries and exposes a readiness check.
//
// The client returned by Connect backs both the user directory and the session
// registry when STORAGE_DRIVER=redis:
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	r.Get("/health/ready", httpserver.ReadinessHandler(log, time.Second, redis.Healthcheck(client)))
//
// Config is populated from REDIS_URL, REDIS_RETRY_ATTEMPTS, REDIS_RETRY_INTERVAL
// and REDIS_CONNECT_TIMEOUT.
package redis
