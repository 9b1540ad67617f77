package dirmirror

// LegalNotice provides license notices for dirmirror itself and the
// third-party dependencies it links.
const LegalNotice = `dirmirror

Licensed under the terms of the MIT License. A copy of this license can be
found online at https://opensource.org/licenses/MIT.


================================================================================
dirmirror depends on the following third-party software:
================================================================================

Go, the Go standard library, and the golang.org/x/sys, golang.org/x/text
subrepositories.

https://golang.org/

Copyright (c) 2009 The Go Authors. All rights reserved.

Used under the terms of the 3-Clause BSD License.

--------------------------------------------------------------------------------

groupcache

https://github.com/golang/groupcache

Copyright 2013 Google Inc.

Used under the terms of the Apache License, Version 2.0.

--------------------------------------------------------------------------------

errors

https://github.com/pkg/errors

Copyright (c) 2015, Dave Cheney <dave@cheney.net>

Used under the terms of the 2-Clause BSD License.

--------------------------------------------------------------------------------

Cobra and pflag

https://github.com/spf13/cobra
https://github.com/spf13/pflag

Copyright 2013 Steve Francia <spf@spf13.com>

Used under the terms of the Apache License, Version 2.0.

--------------------------------------------------------------------------------

go-humanize

https://github.com/dustin/go-humanize

Copyright (c) 2005-2008 Dustin Sallings

Used under the terms of the MIT License.

--------------------------------------------------------------------------------

color and go-isatty

https://github.com/fatih/color
https://github.com/mattn/go-isatty

Copyright (c) 2013 Fatih Arslan
Copyright (c) 2016 Yasuhiro Matsumoto

Used under the terms of the MIT License.

--------------------------------------------------------------------------------

mousetrap

https://github.com/inconshreveable/mousetrap

Copyright 2014 Alan Shreve

Used under the terms of the Apache License, Version 2.0.

--------------------------------------------------------------------------------

doublestar

https://github.com/bmatcuk/doublestar

Copyright (c) 2014 Bob Matcuk

Used under the terms of the MIT License.

--------------------------------------------------------------------------------

basex

https://github.com/eknkc/basex

Copyright (c) 2015 Ekin Koc

Used under the terms of the MIT License.

--------------------------------------------------------------------------------

uuid

https://github.com/google/uuid

Copyright (c) 2009,2014 Google Inc. All rights reserved.

Used under the terms of the 3-Clause BSD License.

--------------------------------------------------------------------------------

fsevents

https://github.com/mutagen-io/fsevents

Copyright (c) 2014 The fsnotify Authors.

Used under the terms of the MIT License.

--------------------------------------------------------------------------------

extstat

https://github.com/mutagen-io/extstat

Copyright (c) 2018 Jacob Howard

Used under the terms of the MIT License.

--------------------------------------------------------------------------------

godotenv

https://github.com/joho/godotenv

Copyright (c) 2013 John Barton

Used under the terms of the MIT License.

--------------------------------------------------------------------------------

yaml.v3

https://github.com/go-yaml/yaml

Copyright (c) 2006-2010 Kirill Simonov
Copyright (c) 2006-2011 Kirill Simonov

Used under the terms of the Apache License, Version 2.0, and the MIT License.
`
