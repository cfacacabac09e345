// Package config loads hosting sessions from YAML or HCL files.
//
// A YAML config:
//
//	library_dir: /usr/share/dotnet/shared/Microsoft.NETCore.App/8.0.0
//	exe_path: /usr/local/bin/clrhost
//	assembly: /srv/app/app.dll
//	trusted_platform_assemblies:
//	  - /srv/app/app.dll
//	app_paths:
//	  - /srv/app
//	properties:
//	  System.GC.Server: "true"
//
// The same config in HCL:
//
//	library_dir = "/usr/share/dotnet/shared/Microsoft.NETCore.App/8.0.0"
//	exe_path    = "/usr/local/bin/clrhost"
//	assembly    = "/srv/app/app.dll"
//	trusted_platform_assemblies = ["/srv/app/app.dll"]
//	app_paths   = ["/srv/app"]
//	properties = {
//	  "System.GC.Server" = "true"
//	}
//
// HostConfig.PropertyBag turns a config into the properties passed to
// runtime.New.
package config
