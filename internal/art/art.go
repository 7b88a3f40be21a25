// Package art holds the pre-rendered banners shown by the home command.
package art

// okFaceSaitama is the full-size banner.
const okFaceSaitama = `
                           @@@@@@@@@@@@@@@@@
                          %@@@@@@@@@@@@@@@@@@@@@
                    =@@@@@@@                @@@@@@
                   @@@@@@@@*                   +@@@
                 @@@@                             @@@
                #@@                                @@@
               @@@                                  =@@
               @*                                    @@%
                 -+:                                  @@
             @@@@##-          -               @@       @@
             @@              @@@@@@@@@@      #@@@@@@@# @@
             @@@@          @@ @       @@     #@      @ @@
             @  @@@        @  @ @@@@- =-  =+   @@@@  . @@
           +@@ .@@@        @@% @    = @:  @:*@ *  =  @ @@
           @     @           @@@.  +@@@   @ @ @@  @@@  @@
           @ @@.@@                        @ @          @@
           @@  @ @@@@                      @ @         @@
           @@@@@ :@ -#                     @ @         @@
            #  @@@@ +-                      :          @@
            .@+                         @@= @@        @@*
              #@@@@@@                   @ @* @        @@
                    @@                  @@%=@@       @@
                     @@.                            @@
                      @@@@@%                      @@@
                       @@@@@@                   @@@@
                           *@@@@:            @@@@@
                            *@@@@@@@@@@@@@@@@@@@
                                @@@@@@@@@@@@@
`

// okFaceText is a one-line fallback for narrow terminals.
const okFaceText = `( OK. )`

var faces = map[string]string{
	"saitama": okFaceSaitama,
	"text":    okFaceText,
}

// OKFace returns the banner for the given size, defaulting to the full-size
// face for unknown names.
func OKFace(size string) string {
	if face, ok := faces[size]; ok {
		return face
	}
	return okFaceSaitama
}
