package redisimpls

import "github.com/go-redis/redis/v8"

var (
	saveCurveScript = redis.NewScript(`
		local curvesKey = KEYS[1]
		local updatedKey = KEYS[2]

		local vName = ARGV[1]
		local vData = ARGV[2]
		local vUpdatedAt = tonumber(ARGV[3])

		local ret = redis.call("HGET", updatedKey, vName)
		if ret ~= false and tonumber(ret) > vUpdatedAt then
			return redis.error_reply("stale curve") 
		end

		redis.call("HSET", curvesKey, vName, vData)
		redis.call("HSET", updatedKey, vName, vUpdatedAt)

		return 0
	`)

	removeCurveScript = redis.NewScript(`
		local curvesKey = KEYS[1]
		local updatedKey = KEYS[2]

		local vName = ARGV[1]

		local n = redis.call("HDEL", curvesKey, vName)
		redis.call("HDEL", updatedKey, vName)

		return n
	`)
)
